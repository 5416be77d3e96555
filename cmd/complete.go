package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion: every
// registered subcommand with its flags, and the top level flags.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch sc.Name() {
		case "add":
			sub.Args = predict.Set(commandTypes())
		case "import":
			sub.Args = predict.Files("*.csv")
		case "topic":
			sub.Args = predict.Nothing
		}
		root.Sub[sc.Name()] = sub
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(fl *flag.Flag) {
		switch fl.Name {
		case "quotes", "quotes-mapping":
			flags[fl.Name] = predict.Files("*.json")
		case "o":
			flags[fl.Name] = predict.Files("*.csv")
		case "cost-method":
			flags[fl.Name] = predict.Set{"average", "fifo"}
		case "format":
			flags[fl.Name] = predict.Set{"generic", "broker"}
		case "type":
			flags[fl.Name] = predict.Set(commandTypes())
		case "class":
			flags[fl.Name] = predict.Set{"qualified", "non-qualified", "roc", "foreign"}
		default:
			if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[fl.Name] = predict.Nothing
			} else {
				flags[fl.Name] = predict.Something
			}
		}
	})
	return flags
}
