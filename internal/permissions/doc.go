// Package permissions is the engine's access policy.
//
// Authorization is a static table lookup on (role, operation kind). Only
// three kinds are privileged: create-directory, delete-file and
// delete-directory. Those require types.RoleAdmin; everything else is open to
// any authenticated session. A denied call is not an error condition for the
// caller: the engine reports it, audits it, and performs no side effects.
package permissions
