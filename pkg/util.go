package pkg

import (
	"fmt"
	"log"
	"os"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// InitLog points the standard logger at dest and returns it. The game owns
// the terminal, so nothing is ever logged to stdout.
func InitLog(dest, prefix string) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return log.New(f, prefix, log.LstdFlags), f, nil
}

// RigName cleans up a player supplied rig name, inventing one when empty.
func RigName(name string) string {
	name = strings.Join(strings.Fields(name), "-")
	if name == "" {
		return petname.Generate(2, "-")
	}
	if r := []rune(name); len(r) > 24 {
		name = string(r[:24])
	}
	return name
}
