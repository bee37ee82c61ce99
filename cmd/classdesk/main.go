// classdesk is a terminal client for browsing and editing student records.
package main

import "classdesk/internal/cli"

func main() {
	cli.Execute()
}
