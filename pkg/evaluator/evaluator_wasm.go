//go:build (js && wasm) || wasip1

package evaluator

// init disables parallel EvalAll on WebAssembly targets. The Go runtime
// runs every goroutine on a single thread there, so spawning one per
// expression only adds scheduling overhead.
func init() {
	defaultConcurrency = false
}
