package dynlib

import "runtime"

// dlopen flags. RTLD_NOW resolves all symbols immediately so a candidate's
// own missing link-time dependencies surface at Load time rather than at
// first symbol use; RTLD_LOCAL keeps its symbols from leaking into
// subsequently loaded plug-ins.
const (
	rtldLazy  = 0x1
	rtldNow   = 0x2
	rtldLocal = 0x0
)

func dlopenFlags() int {
	switch runtime.GOOS {
	case "darwin", "linux":
		return rtldNow | rtldLocal
	case "windows":
		// purego's Windows Dlopen ignores POSIX dlopen flags.
		return 0
	default:
		return rtldNow | rtldLocal
	}
}
