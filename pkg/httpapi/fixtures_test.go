package httpapi

// Minimal hand-assembled WebAssembly modules for exercising the HTTP
// layer end to end without a guest toolchain. Same layout as
// pkg/sandbox's fixtures: exports memory, get_input_buffer (-> 1024),
// and evaluate_access (ptr, len -> verdict).
func buildFixtureModule(verdict byte) []byte {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typeSec := []byte{
		0x01, 0x0b,
		0x02,
		0x60, 0x00, 0x01, 0x7f,
		0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f,
	}

	funcSec := []byte{
		0x03, 0x03,
		0x02, 0x00, 0x01,
	}

	memSec := []byte{
		0x05, 0x03,
		0x01, 0x00, 0x01,
	}

	exportSec := []byte{0x07}
	exportBody := []byte{0x03}
	exportBody = append(exportBody, exportEntry("memory", 0x02, 0)...)
	exportBody = append(exportBody, exportEntry("get_input_buffer", 0x00, 0)...)
	exportBody = append(exportBody, exportEntry("evaluate_access", 0x00, 1)...)
	exportSec = append(exportSec, byte(len(exportBody)))
	exportSec = append(exportSec, exportBody...)

	codeSec := []byte{0x0a}
	codeBody := []byte{0x02}
	codeBody = append(codeBody, 0x05, 0x00, 0x41, 0x80, 0x08, 0x0b)
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

func fixtureAllowAll() []byte { return buildFixtureModule(0x01) }

func fixtureDenyAll() []byte { return buildFixtureModule(0x00) }
