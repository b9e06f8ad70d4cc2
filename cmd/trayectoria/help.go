// ABOUTME: Help display for the trayectoria CLI with grouped flags, examples, and environment status.
// ABOUTME: Provides printHelp for usage output and envStatus for server variable detection.
package main

import (
	"fmt"
	"io"
	"os"
)

const trayectoriaBanner = `
  1997      2005      2013      2021
   |=========|         |====|
        |===================|
             |========|    |=========>
`

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples, and environment status.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, trayectoriaBanner)
	fmt.Fprintf(w, "trayectoria %s — appointment timeline browser\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  trayectoria [feed.json]                  Browse timelines in the terminal")
	fmt.Fprintln(w, "  trayectoria -import feed.json            Import a feed into the database")
	fmt.Fprintln(w, "  trayectoria -validate feed.json          Decode a feed and report its contents")
	fmt.Fprintln(w, "  trayectoria -serve                       Start the HTTP API server")
	fmt.Fprintln(w, "  trayectoria -export svg -entity <id>     Render one timeline as SVG")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Data Flags:")
	fmt.Fprintln(w, "  -db <path>            Sqlite database path (default: trayectoria.db)")
	fmt.Fprintln(w, "  -config <path>        Optional YAML display configuration")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Export Flags:")
	fmt.Fprintln(w, "  -export <format>      svg or html")
	fmt.Fprintln(w, "  -entity <id>          Entity to render")
	fmt.Fprintln(w, "  -kind <kind>          subjects or containers (default: subjects)")
	fmt.Fprintln(w, "  -o <path>             Output file (default: stdout)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  trayectoria designados.json")
	fmt.Fprintln(w, "  trayectoria -import designados.json -db trayectoria.db")
	fmt.Fprintln(w, "  trayectoria -export svg -entity 42 -o torres.svg")
	fmt.Fprintln(w, "  trayectoria -export html -kind containers -entity inst-3")
	fmt.Fprintln(w, "  trayectoria -serve designados.json")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment (server mode):")
	fmt.Fprintf(w, "  TRAYECTORIA_BIND          %s\n", envStatus("TRAYECTORIA_BIND"))
	fmt.Fprintf(w, "  TRAYECTORIA_AUTH_TOKEN    %s\n", envStatus("TRAYECTORIA_AUTH_TOKEN"))
	fmt.Fprintf(w, "  TRAYECTORIA_ALLOW_REMOTE  %s\n", envStatus("TRAYECTORIA_ALLOW_REMOTE"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Non-loopback binds require TRAYECTORIA_ALLOW_REMOTE=1 and an auth token.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
