package main

import (
	"github.com/oncycle-org/adherence/cmd/admin/command"
)

func main() {
	command.Execute()
}
