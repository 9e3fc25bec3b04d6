package sandbox

// The fixtures below are minimal, hand-assembled WebAssembly binary
// modules (no wat2wasm, no guest toolchain involved — authoring policies
// in anything but bytecode is out of scope for this repository). Each
// exports "memory", "get_input_buffer" (-> i32 1024), and
// "evaluate_access" (ptr i32, len i32 -> i32), matching the ABI of
// abi.go. They differ only in what evaluate_access returns.
//
// Binary layout (WebAssembly 1.0):
//
//	magic + version
//	type section:     type0 () -> i32 ; type1 (i32,i32) -> i32
//	function section: func0: type0 ; func1: type1
//	memory section:   1 memory, min 1 page, no max
//	export section:   "memory" (mem 0), "get_input_buffer" (func 0), "evaluate_access" (func 1)
//	code section:     func0 { i32.const 1024 } ; func1 { i32.const <verdict> }

func buildFixtureModule(verdict byte) []byte {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typeSec := []byte{
		0x01, 0x0b, // section 1, size 11
		0x02,                         // 2 types
		0x60, 0x00, 0x01, 0x7f, // () -> i32
		0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f, // (i32,i32) -> i32
	}

	funcSec := []byte{
		0x03, 0x03, // section 3, size 3
		0x02, 0x00, 0x01, // 2 funcs: type0, type1
	}

	memSec := []byte{
		0x05, 0x03, // section 5, size 3
		0x01, 0x00, 0x01, // 1 memory, flags 0, min 1 page
	}

	exportSec := []byte{0x07}
	exportBody := []byte{0x03} // 3 exports
	exportBody = append(exportBody, exportEntry("memory", 0x02, 0)...)
	exportBody = append(exportBody, exportEntry("get_input_buffer", 0x00, 0)...)
	exportBody = append(exportBody, exportEntry("evaluate_access", 0x00, 1)...)
	exportSec = append(exportSec, byte(len(exportBody)))
	exportSec = append(exportSec, exportBody...)

	codeSec := []byte{0x0a}
	codeBody := []byte{0x02} // 2 function bodies
	// func0: locals=0, i32.const 1024 (LEB128 0x80 0x08), end
	codeBody = append(codeBody, 0x05, 0x00, 0x41, 0x80, 0x08, 0x0b)
	// func1: locals=0, i32.const <verdict>, end
	codeBody = append(codeBody, 0x04, 0x00, 0x41, verdict, 0x0b)
	codeSec = append(codeSec, byte(len(codeBody)))
	codeSec = append(codeSec, codeBody...)

	out := append([]byte{}, header...)
	out = append(out, typeSec...)
	out = append(out, funcSec...)
	out = append(out, memSec...)
	out = append(out, exportSec...)
	out = append(out, codeSec...)
	return out
}

func exportEntry(name string, kind byte, index byte) []byte {
	entry := []byte{byte(len(name))}
	entry = append(entry, []byte(name)...)
	entry = append(entry, kind, index)
	return entry
}

// fixtureAllowAll always returns 1 from evaluate_access.
func fixtureAllowAll() []byte { return buildFixtureModule(0x01) }

// fixtureDenyAll always returns 0 from evaluate_access.
func fixtureDenyAll() []byte { return buildFixtureModule(0x00) }

// fixtureMissingEvaluateAccess exports memory and get_input_buffer only.
func fixtureMissingEvaluateAccess() []byte {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typeSec := []byte{
		0x01, 0x05,
		0x01,
		0x60, 0x00, 0x01, 0x7f,
	}
	funcSec := []byte{0x03, 0x02, 0x01, 0x00}
	memSec := []byte{0x05, 0x03, 0x01, 0x00, 0x01}

	exportBody := []byte{0x02}
	exportBody = append(exportBody, exportEntry("memory", 0x02, 0)...)
	exportBody = append(exportBody, exportEntry("get_input_buffer", 0x00, 0)...)
	exportSec := []byte{0x07, byte(len(exportBody))}
	exportSec = append(exportSec, exportBody...)

	codeBody := []byte{0x01, 0x05, 0x00, 0x41, 0x80, 0x08, 0x0b}
	codeSec := []byte{0x0a, byte(len(codeBody))}
	codeSec = append(codeSec, codeBody...)

	out := append([]byte{}, header...)
	out = append(out, typeSec...)
	out = append(out, funcSec...)
	out = append(out, memSec...)
	out = append(out, exportSec...)
	out = append(out, codeSec...)
	return out
}

// fixtureInfiniteLoop's evaluate_access never returns: `loop; br 0; end`.
// It exists to exercise fuel exhaustion (spec.md §4.3 error mapping).
func fixtureInfiniteLoop() []byte {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typeSec := []byte{
		0x01, 0x0b,
		0x02,
		0x60, 0x00, 0x01, 0x7f,
		0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f,
	}
	funcSec := []byte{0x03, 0x03, 0x02, 0x00, 0x01}
	memSec := []byte{0x05, 0x03, 0x01, 0x00, 0x01}

	exportBody := []byte{0x03}
	exportBody = append(exportBody, exportEntry("memory", 0x02, 0)...)
	exportBody = append(exportBody, exportEntry("get_input_buffer", 0x00, 0)...)
	exportBody = append(exportBody, exportEntry("evaluate_access", 0x00, 1)...)
	exportSec := []byte{0x07, byte(len(exportBody))}
	exportSec = append(exportSec, exportBody...)

	codeBody := []byte{0x02}
	// func0: get_input_buffer -> 1024
	codeBody = append(codeBody, 0x05, 0x00, 0x41, 0x80, 0x08, 0x0b)
	// func1: loop (result i32); br 0; end loop; end func
	codeBody = append(codeBody, 0x07, 0x00, 0x03, 0x7f, 0x0c, 0x00, 0x0b, 0x0b)
	codeSec := []byte{0x0a, byte(len(codeBody))}
	codeSec = append(codeSec, codeBody...)

	out := append([]byte{}, header...)
	out = append(out, typeSec...)
	out = append(out, funcSec...)
	out = append(out, memSec...)
	out = append(out, exportSec...)
	out = append(out, codeSec...)
	return out
}
