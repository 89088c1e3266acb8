package main

import "github.com/meysamhadeli/doctrans/cmd"

func main() {
	cmd.Execute()
}
