package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "tform",
		Short: "An interactive multi-step terminal form engine",
	}

	rootCmd.AddCommand(newRunCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
	}
}
