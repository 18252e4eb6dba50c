package email

import "errors"

// ErrUnknownScenario is returned for a scenario outside the fixed set.
var ErrUnknownScenario = errors.New("unknown email scenario")
