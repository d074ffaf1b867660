// Command filetools reads time stamps embedded in file names and converts byte sizes.
package main

import (
	"github.com/authenticvision/filetools/mainutil"
)

func main() {
	mainutil.Run(newRootCommand())
}
