package utils

import (
	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisableMethods = true
}

// SDump renders any value for the debug inspection endpoint.
func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}
