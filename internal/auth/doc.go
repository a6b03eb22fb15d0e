// Package auth holds the password credential scheme and the per-request role
// resolution used to gate field visibility and writes.
//
// Passwords are stored as PBKDF2-HMAC-SHA256 keys with a per-user salt.
// Accounts created before salting keep an unsalted SHA-1 digest and are
// verified with the legacy scheme until their next password change.
package auth
