// Command fileengine is the interactive front end of the sandboxed file engine.
//
// It loads configuration from the environment, logs the user in against the
// YAML users file and then runs a numbered menu. Each menu choice is turned
// into one typed engine operation; the outcome is printed and the menu comes
// back until the user picks Exit.
//
// Usage:
//
//	# Start the shell on ./file_management_system
//	fileengine
//
//	# Use another root and debug logging
//	fileengine --root /srv/files --dev
//
//	# Create an account, then list accounts
//	fileengine useradd alice --role admin
//	fileengine users
//
//	# Print the audit summary without logging in
//	fileengine dashboard
//
// Login attempts, successful or not, and the end of the session are written
// to the audit log next to the operation records. Login failure is the only
// fatal error; everything else is reported and the menu continues.
package main
