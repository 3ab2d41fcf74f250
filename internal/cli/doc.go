// Package cli implements the interactive console of polyglot.
//
// The App shows two numbered menus. Logged out:
//
//	1. Login
//	2. Register
//	3. Exit
//
// Logged in:
//
//	1. Select a Language
//	2. View Progress
//	3. Logout
//
// Invalid choices are re-prompted. Selecting a language leads to its
// lessons; a chosen lesson is played question by question, the third
// question being answered by voice. Finished lessons are saved to the
// user's progress history.
//
// Input is read line by line. Passwords are read without echo when the
// input is a terminal.
package cli
