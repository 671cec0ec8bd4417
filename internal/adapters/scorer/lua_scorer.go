package scorer

import (
	"context"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// EntryPoint is the function the scoring script must define. It
// receives the message text and returns a numeric score.
const EntryPoint = "check_spam"

// LuaScorer computes spam scores by executing an externally supplied
// Lua script. The script is re-read on every call and run in a fresh
// interpreter, so a moderator can edit the scoring logic live without
// restarting the service. The script sees only the message text; it
// has no access to the rule store or the reputation ledger.
type LuaScorer struct {
	scriptPath string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewLuaScorer creates a scorer reading its script from scriptPath.
// A timeout of zero disables the execution deadline.
func NewLuaScorer(scriptPath string, timeout time.Duration, logger *zap.Logger) *LuaScorer {
	return &LuaScorer{
		scriptPath: scriptPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Score loads and runs the scoring script against the message. Any
// failure (missing script, parse error, runtime error, missing entry
// point, non-numeric result) is returned as an error; the caller is
// expected to coerce it to a zero score rather than block message
// processing.
func (s *LuaScorer) Score(ctx context.Context, message string) (float64, error) {
	src, err := os.ReadFile(s.scriptPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read scoring script %s: %w", s.scriptPath, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Fresh interpreter per call; nothing leaks between evaluations.
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	if err := L.DoString(string(src)); err != nil {
		return 0, fmt.Errorf("failed to load scoring script: %w", err)
	}

	// The message is exposed both as the call argument and as the
	// global "message", matching the documented script contract.
	L.SetGlobal("message", lua.LString(message))

	fn, ok := L.GetGlobal(EntryPoint).(*lua.LFunction)
	if !ok {
		return 0, fmt.Errorf("scoring script does not define %s", EntryPoint)
	}

	err = L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(message))
	if err != nil {
		return 0, fmt.Errorf("%s failed: %w", EntryPoint, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s returned %s, expected number", EntryPoint, ret.Type())
	}

	return float64(num), nil
}
