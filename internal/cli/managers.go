package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
	"omnipkg/pkg/manager/detector"
)

var managersCmd = &cobra.Command{
	Use:   "managers",
	Short: "Show detected package managers and their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sys := detector.Detect()
		fmt.Printf("%s %s (%s/%s)\n", ui.Header.Sprint("System:"), sys.PrettyName, sys.OS, sys.Arch)
		if native := nativeManager(sys); native != "" {
			fmt.Printf("%s %s\n", ui.Header.Sprint("Native:"), native)
		}
		fmt.Println()

		opts := selectOptions(true)
		instances, err := registry.Select(cmd.Context(), opts)
		if err != nil {
			return err
		}

		tbl := ui.NewTable([]string{"manager", "name", "status", "version", "path"})
		for _, inst := range instances {
			tbl.AddRow([]string{
				ui.ManagerID.Sprint(inst.ID()),
				inst.Descriptor.Name,
				statusCell(inst),
				inst.VersionRaw,
				inst.Path,
			})
		}
		tbl.Render()
		return nil
	},
}

// nativeManager maps the detected distribution to the system package manager.
func nativeManager(sys *detector.SystemInfo) string {
	switch {
	case sys.OS == "darwin":
		return "brew"
	case sys.OS == "windows":
		return "winget"
	case sys.MatchesDistro("arch", "manjaro"):
		return "pacman"
	case sys.MatchesDistro("debian", "ubuntu"):
		return "apt"
	case sys.MatchesDistro("fedora", "rhel", "centos"):
		return "dnf"
	case sys.MatchesDistro("opensuse", "suse", "sles"):
		return "zypper"
	case sys.MatchesDistro("alpine"):
		return "apk"
	}
	return ""
}

func statusCell(inst manager.Instance) string {
	if inst.Available {
		return ui.Success.Sprint("available")
	}
	if inst.Reason != "" {
		return ui.Muted.Sprint(inst.Reason)
	}
	return ui.Muted.Sprint("unavailable")
}
