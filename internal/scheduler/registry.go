package scheduler

import (
	"fmt"
	"os/exec"
	"strings"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Dialects returns the built-in dialects in display order.
func Dialects() []Dialect {
	return []Dialect{PbsDialect{}, SgeDialect{}}
}

// DialectByName resolves a dialect from a user supplied name.
// Accepts "pbs", "torque" and "sge" in any case.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pbs", "torque":
		return PbsDialect{}, nil
	case "sge":
		return SgeDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: pbs, torque, sge)", ErrUnknownDialect, name)
	}
}

// DetectDialect picks a dialect from the given environment snapshot.
// PBS and SGE both ship a qsub client, so SGE is recognized by SGE_ROOT.
func DetectDialect(env []string) (Dialect, error) {
	if _, err := lookPath("qsub"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchedulerNotFound, err)
	}
	if _, ok := lookupEnv(env, "SGE_ROOT"); ok {
		return SgeDialect{}, nil
	}
	return PbsDialect{}, nil
}

// lookupEnv finds key in a KEY=VALUE list. Later entries win, matching
// os/exec semantics for duplicate keys.
func lookupEnv(env []string, key string) (string, bool) {
	var (
		value string
		found bool
	)
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			value = strings.TrimPrefix(kv, prefix)
			found = true
		}
	}
	return value, found
}
