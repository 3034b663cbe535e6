package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roomsync",
	Short: "RoomSync coordinates hangout rooms: admission, WebRTC signaling, shared control and watch parties.",
	Run: func(cmd *cobra.Command, args []string) {
		runApp()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the signaling server",
	Run: func(cmd *cobra.Command, args []string) {
		runApp()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
