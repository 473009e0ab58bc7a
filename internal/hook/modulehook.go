package hook

import (
	"fmt"
	"strings"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/worker"
)

// Policy decides how an overloaded module function is wrapped.
type Policy int

// Wrapping policies.
const (
	// PolicyIntercept unwraps object arguments, runs the function locally
	// and wraps tensor results as objects owned by the local worker. Calls
	// with pointer arguments run on the pointers' location instead.
	PolicyIntercept Policy = iota

	// PolicyLocal is PolicyIntercept without remote dispatch. Used for
	// functions that create tensors from plain values.
	PolicyLocal

	// PolicyPassthrough calls the native function unchanged. The function
	// is still aliased and observed.
	PolicyPassthrough
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyIntercept:
		return "intercept"
	case PolicyLocal:
		return "local"
	case PolicyPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// DefaultPolicies is the reviewed wrapping policy of each library
// function, keyed by "module.func". Swept functions not listed here get
// PolicyIntercept.
var DefaultPolicies = map[string]Policy{
	"math.add":         PolicyIntercept,
	"math.subtract":    PolicyIntercept,
	"math.multiply":    PolicyIntercept,
	"math.divide":      PolicyIntercept,
	"math.negative":    PolicyIntercept,
	"math.exp":         PolicyIntercept,
	"math.reduce_sum":  PolicyIntercept,
	"linalg.matmul":    PolicyIntercept,
	"linalg.transpose": PolicyIntercept,
	"array.reshape":    PolicyIntercept,
	"array.cast":       PolicyIntercept,
	"array.zeros":      PolicyLocal,
	"array.ones":       PolicyLocal,
	"array.fill":       PolicyLocal,
	"array.constant":   PolicyLocal,
	"random.uniform":   PolicyLocal,
	"random.normal":    PolicyLocal,
}

// sweep overloads every candidate function of every module and returns the
// qualified names it replaced.
func (h *Hook) sweep(modules map[string]*registry.Module) []string {
	var done []string
	for _, moduleName := range sortedKeys(modules) {
		m := modules[moduleName]
		for _, funcName := range h.attrs.Candidates(m) {
			if h.overload(moduleName, m, funcName) {
				done = append(done, moduleName+"."+funcName)
			}
		}
	}
	return done
}

// overload aliases m.funcName as native_<funcName> and replaces it with an
// interception wrapper. It reports whether it replaced anything.
func (h *Hook) overload(moduleName string, m *registry.Module, funcName string) bool {
	attr, ok := m.Attr(funcName)
	if !ok || attr.Kind != registry.KindFunction {
		return false
	}

	m.SetAttr(NativePrefix+funcName, attr)

	qualified := moduleName + "." + funcName
	hooked := attr
	if len(hooked.APINames) > 0 {
		hooked.ModulePath = publicModulePath(hooked.APINames[0])
	}
	hooked.Func = h.hookedFunc(qualified, attr.Func, h.policyFor(qualified))
	m.SetAttr(funcName, hooked)

	h.debugf("overloaded %s (%s) as %s", qualified, hooked.ModulePath, h.policyFor(qualified))
	return true
}

// publicModulePath derives the public module of an exported API name:
// "born.math.add" is reported as defined in "born.math".
func publicModulePath(apiName string) string {
	i := strings.LastIndex(apiName, ".")
	if i < 0 {
		return apiName
	}
	return apiName[:i]
}

// Policy returns the wrapping policy of the module function qualified
// ("module.func").
func (h *Hook) Policy(qualified string) Policy {
	return h.root().policyFor(qualified)
}

func (h *Hook) policyFor(qualified string) Policy {
	if p, ok := h.policies[qualified]; ok {
		return p
	}
	return PolicyIntercept
}

// hookedFunc builds the interception wrapper of native.
func (h *Hook) hookedFunc(qualified string, native registry.Function, policy Policy) registry.Function {
	return func(args ...any) (any, error) {
		if h.observer != nil {
			h.observer(qualified)
		}

		switch policy {
		case PolicyPassthrough:
			return native(args...)
		case PolicyIntercept:
			if location := remoteLocation(args); location != nil {
				return h.callRemote(qualified, location, args)
			}
		}

		nativeArgs, err := h.unwrapArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", qualified, err)
		}
		res, err := native(nativeArgs...)
		if err != nil {
			return nil, err
		}
		return h.wrapResult(res, h.localWorker), nil
	}
}

// callRemote runs a module function on location and wraps the result.
func (h *Hook) callRemote(qualified string, location worker.Worker, args []any) (any, error) {
	cmdArgs, err := h.remoteArgs(location, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", qualified, err)
	}

	h.debugf("forwarding %s to %s", qualified, location.ID())
	res, err := location.Execute(h.ctx, worker.Command{
		Kind: worker.CallFunction,
		Name: qualified,
		Args: cmdArgs,
	})
	if err != nil {
		return nil, err
	}
	return h.wrapPointer(h.pointerResult(location, res, h.localWorker)), nil
}
