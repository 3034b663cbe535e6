package main

import "github.com/qrave1/RoomSync/cmd"

func main() {
	cmd.Execute()
}
