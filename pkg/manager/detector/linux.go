package detector

import (
	"bufio"
	"os"
	"strings"
)

type linuxInfo struct {
	ID         string
	IDLike     []string
	PrettyName string
}

// detectLinux reads /etc/os-release. A host without one is reported as
// unknown rather than failing detection.
func detectLinux() linuxInfo {
	info := linuxInfo{ID: "unknown", PrettyName: "Unknown Linux"}

	file, err := os.Open("/etc/os-release")
	if err != nil {
		return info
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)

		switch strings.TrimSpace(key) {
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = strings.Fields(value)
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}
	return info
}
