package commands

import (
	"fmt"

	"devconsole/cmd"
)

// ExampleID identifies the demo owner.
const ExampleID = "example"

// Difficulty members accepted by testEnum.
var Difficulty = []string{"Easy", "Normal", "Hard"}

// Example is a demo owner that exercises every argument kind.
type Example struct {
	out cmd.Logger
}

// NewExample creates the demo owner. Results are printed to out.
func NewExample(out cmd.Logger) *Example {
	return &Example{out: out}
}

func (e *Example) ConsoleID() string { return ExampleID }

func (e *Example) ConsoleCommands() []*cmd.Command {
	return []*cmd.Command{
		{
			Name:    "TestString",
			Params:  []cmd.Parameter{cmd.String("str")},
			Handler: e.testString,
		},
		{
			Name:    "TestTwoString",
			Params:  []cmd.Parameter{cmd.String("str1"), cmd.String("str2")},
			Handler: e.testTwoString,
		},
		{
			Name:    "TestBool",
			Params:  []cmd.Parameter{cmd.Bool("b")},
			Handler: e.testBool,
		},
		{
			Name:    "TestFunction",
			Params:  []cmd.Parameter{cmd.String("str"), cmd.Int("number")},
			Handler: e.testFunction,
		},
		{
			Name:        "TestCalculate",
			Description: "Calculates 4 number",
			Params:      []cmd.Parameter{cmd.Int("n1"), cmd.Int("n2"), cmd.Int("n3"), cmd.Int("n4")},
			Handler:     e.testCalculate,
		},
		{
			Name:    "TestDivide",
			Params:  []cmd.Parameter{cmd.Float("n1"), cmd.Float("n2")},
			Handler: e.testDivide,
		},
		{
			Name:        "TestEnum",
			Description: "Debug log enums",
			Params:      []cmd.Parameter{cmd.Enum("enm", Difficulty...)},
			Handler:     e.testEnum,
		},
		{
			Name:        "TestVector2",
			Description: "Test Vec2",
			Params:      []cmd.Parameter{cmd.Vec2("vec")},
			Handler:     e.testVector2,
		},
		{
			Name:        "TestVector3",
			Description: "Test Vec3",
			Params:      []cmd.Parameter{cmd.Vec3("vec")},
			Handler:     e.testVector3,
		},
	}
}

func (e *Example) testString(args cmd.Args) error {
	e.out.Infof("%s", args.Text(0))
	return nil
}

func (e *Example) testTwoString(args cmd.Args) error {
	e.out.Infof("%s|%s", args.Text(0), args.Text(1))
	return nil
}

func (e *Example) testBool(args cmd.Args) error {
	e.out.Infof("%t", args.Bool(0))
	return nil
}

func (e *Example) testFunction(args cmd.Args) error {
	e.out.Infof("%s%d", args.Text(0), args.Int(1))
	return nil
}

func (e *Example) testCalculate(args cmd.Args) error {
	sum := 0
	for i := range args {
		sum += args.Int(i)
	}
	e.out.Infof("%d", sum)
	return nil
}

func (e *Example) testDivide(args cmd.Args) error {
	if args.Float(1) == 0 {
		return fmt.Errorf("division by zero")
	}
	e.out.Infof("%g", args.Float(0)/args.Float(1))
	return nil
}

func (e *Example) testEnum(args cmd.Args) error {
	e.out.Infof("%s", args.Enum(0))
	return nil
}

func (e *Example) testVector2(args cmd.Args) error {
	e.out.Infof("%s", args.Vector2(0))
	return nil
}

func (e *Example) testVector3(args cmd.Args) error {
	e.out.Infof("%s", args.Vector3(0))
	return nil
}
