// Command pathctl is the admin tool for the pathway finder: it validates
// question banks, scores answer files offline and converts scholarship
// catalogs between JSON and XLSX.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
