// Package ansi provides the default dialect: double-quoted
// identifiers, standard escapes, and no grammar extensions.
package ansi

import "github.com/leapstack-labs/sqlbridge/pkg/dialect"

// ANSI is the generic default dialect.
var ANSI = dialect.New("ansi").Build()

func init() {
	dialect.Register(ANSI)
}
