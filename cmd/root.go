package main

import "github.com/spf13/cobra"

func main() {
	var root = &cobra.Command{Use: "livewell"}

	root.AddCommand(serveCMD(), consultCMD())
	_ = root.Execute()
}
