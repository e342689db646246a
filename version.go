package vault

import "fmt"

// Release number of the vault application.
const (
	Maj = 0
	Min = 1
	Fix = 0
)

// GitCommit is set with -ldflags "-X github.com/iov-one/vault.GitCommit=..."
var GitCommit = ""

// Version returns the release and, when known, the commit it was built
// from.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d", Maj, Min, Fix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
