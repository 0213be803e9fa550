package main

import (
	"github.com/audiomood/moodscan/cmd"
)

func main() {
	cmd.Execute()
}
