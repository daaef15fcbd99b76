// Package romfile handles disk I/O for CHIP-8 ROM images. It is split out of
// the virtual machine so the VM's own LoadROM contract stays a pure
// byte-slice operation, independently testable without touching disk.
package romfile

import (
	"fmt"
	"os"
)

// Load reads the raw ROM image at path. It does not enforce the machine's
// maximum size; callers pass the result to Machine.LoadROM, which enforces
// that contract.
func Load(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: reading %s: %w", path, err)
	}
	return rom, nil
}
