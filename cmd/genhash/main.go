// Prints the credential digest for a password, for seeding and debugging.
// Uso: go run cmd/genhash/main.go -scheme legacy|bcrypt <password>
package main

import (
	"flag"
	"fmt"
	"os"

	"barveredales/internal/credential"
)

func main() {
	scheme := flag.String("scheme", credential.SchemeLegacy, "legacy | bcrypt")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: genhash [-scheme legacy|bcrypt] <password>")
		os.Exit(2)
	}

	digest, err := credential.New(*scheme).Hash(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(digest)
}
