// Command authenticator generates HOTP and TOTP codes for accounts kept in a
// local JSON store.
//
//	authenticator add --account github --key JBSWY3DPEHPK3PXP
//	authenticator add --account vpn --key GEZDGNBVGY3TQOJQ --hotp --algorithm sha256
//	authenticator view --account github
//	authenticator list --length 8
//	authenticator delete --account vpn
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCommand()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		a.printer.report(err)
		return 1
	}
	return 0
}
