package troupe

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// globalLogger is the package-level fallback for diagnostics raised outside
// any scene (nil receivers, detached actors). Defaults to a no-op logger.
var globalLogger = zap.NewNop()

// SetLogger installs the package-level fallback logger. Scenes created after
// this call inherit it. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// NewDevelopmentLogger builds a human-readable console logger at debug
// level, suitable for examples and interactive sessions. If it cannot be
// built the no-op logger is returned instead.
func NewDevelopmentLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// reportNilActor logs an operation attempted on a nil actor. Programmer
// errors of this kind are reported and absorbed rather than panicking, so a
// stray nil cannot take the whole loop down.
func reportNilActor(op string) {
	globalLogger.Warn("operation on nil actor", zap.String("op", op))
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// actor is used in a tree operation. Only called when debug mode is on; in
// release mode callers skip this entirely.
func debugCheckDestroyed(a *Actor, op string) {
	if a.flags&flagDestroyed != 0 {
		panic(fmt.Sprintf("troupe debug: %s on destroyed actor %q (id was %d)", op, a.name, a.id))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(a *Actor) {
	depth := 0
	for p := a; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[troupe] warning: tree depth %d exceeds %d (actor %q)\n",
			depth, debugMaxTreeDepth, a.name)
	}
}

// debugCheckChildCount warns on stderr if a group has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *Group) {
	if len(g.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[troupe] warning: group %q has %d children (threshold %d)\n",
			g.Actor.name, len(g.children), debugMaxChildCount)
	}
}
