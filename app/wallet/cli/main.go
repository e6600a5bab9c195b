package main

import "github.com/iYashrajPatil/Blockchain-s-Security-of-EDA/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
