package cmd

import (
	"fmt"

	"github.com/brogergvhs/apodd/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.ListConfigs()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no configs available, run `apodd config init` first")
			}

			cursor := 0
			for i, c := range list {
				if c.Active {
					cursor = i
				}
			}

			prompt := promptui.Select{
				Label: "Select config",
				Items: list,
				Templates: &promptui.SelectTemplates{
					Active:   `▸ {{ .Label | cyan }}{{ if .Active }} (active){{ end }}`,
					Inactive: `  {{ .Label }}{{ if .Active }} (active){{ end }}`,
					Selected: `{{ "Selected:" | faint }} {{ .Label }}`,
					Details:  `{{ .Path | faint }}`,
				},
				CursorPos: cursor,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}

			label = list[idx].Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)

		if path, err := config.ConfigPathByLabel(label); err == nil {
			if cfg, err := config.LoadFile(path); err == nil {
				fmt.Println("Images will be saved to:", cfg.SaveDirectory())
			} else {
				fmt.Printf("warning: %v\n", err)
			}
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
