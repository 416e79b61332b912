package main

import "github.com/Efeg35/contravo-sub006/cmd"

func main() {
	cmd.Execute()
}
