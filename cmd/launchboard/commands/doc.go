// Package commands defines the launchboard CLI.
//
// Commands
//
//   - serve      Run the HTTP server hosting launch screens
//   - countries  List the selectable countries
//   - time       Print the current time in a country
//   - launches   Mount one screen, wait for its launch fetch and print the cards
//
// Configuration is read from the environment before any subcommand runs.
package commands
