// Package cli implements the interactive FileDrive client.
//
// # Overview
//
// App owns the only client state (state.State) and a line-oriented REPL.
// Commands map to the services package; each one replaces the state with
// the one the service returns and prints its status line.
//
// # Commands
//
//	Logged out:
//	  help | signup | confirm [email] | login | exit | quit
//
//	Logged in:
//	  whoami                       show name and role
//	  ls [query]                   re-fetch and list files, filtered by name
//	  sort <name-asc|name-desc|size-asc|size-desc>
//	  groups [ext|owner]           group the visible files
//	  select <path>                choose a local file to upload
//	  upload [path]                upload the selection (or path)
//	  download <fileId> [--open]   save to the download directory or open in browser
//	  delete <fileId>              delete after confirmation
//	  share <fileId> [email] [perms]
//	  activity [from=YYYY-MM-DD] [to=YYYY-MM-DD] [action=..] [sort=..]
//	  analytics
//	  profile [full name]
//	  logout
//
// # Session expiry
//
// Whenever an operation fails because the session is gone or was rejected
// by the backend, the App prints a notice, drops the session and returns
// to the logged-out prompt.
package cli
