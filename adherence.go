package main

import (
	"github.com/oncycle-org/adherence/api"
)

func main() {
	api.MainLoop()
}
