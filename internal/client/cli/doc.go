// Package cli implements the hospital-accounts command line client.
//
// The client runs a single command per invocation:
//
//	accounts [-a addr] [-timeout d] signin EMAIL
//	accounts [-a addr] [-timeout d] register EMAIL [USERNAME ROLE]
//	accounts [-a addr] [-timeout d] reset EMAIL
//	accounts [-a addr] [-timeout d] list
//	accounts [-a addr] [-timeout d] ping
//
// register asks for USERNAME and ROLE when only EMAIL is given. Passwords are
// prompted for without echo, or read as one line from stdin when it is not a
// terminal. Exit status is 0 for a positive outcome, 1 for
// a negative one (failed sign-in, duplicate email, unknown user) and 2 for
// usage or transport errors.
package cli
