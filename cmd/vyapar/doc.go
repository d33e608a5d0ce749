// Package cmd/vyapar provides the Vyapar admin console CLI.
//
// Install once globally:
//
//	go install github.com/shashiranjanraj/vyapar/cmd/vyapar@latest
//
// Point it at a backend with API_BASE_URL (flag, .env or config/app.json),
// then:
//
//	vyapar auth:login          # authenticate and store the session
//	vyapar dashboard           # overview: sales, statuses, best sellers
//	vyapar orders:list         # browse orders with filters
//	vyapar orders:status 42 shipped
//	vyapar orders:track 42 --number TRK123 --courier BlueDart
//	vyapar orders:export       # download the filtered CSV
//	vyapar products:list --low-stock
//	vyapar categories:list
//	vyapar settings:list
//	vyapar auth:logout
//
// The session (token, admin identity, remember-me flag) persists between
// invocations in the configured key-value store: an encrypted file under
// ~/.vyapar by default, or Redis when several operators share a host.
package main
