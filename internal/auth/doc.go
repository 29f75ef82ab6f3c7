// Package auth stores user accounts and turns a successful login into a
// session.
//
// Accounts live in a YAML file:
//
//	users:
//	  - username: admin
//	    password_hash: $2a$10$...
//	    role: admin
//
// Passwords are hashed with bcrypt. The engine trusts the resulting
// session for its whole lifetime and never re-validates it.
package auth
