package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	"github.com/poiesic/leitmotif/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// go generate runs in core; write relative to the module root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/leitmotif/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.Kind]())
	g.AddDefinedType(reflect.TypeFor[core.Letter]())
	g.AddDefinedType(reflect.TypeFor[core.Accidental]())
	g.AddDefinedType(reflect.TypeFor[core.DurationType]())

	// Letter, Accidental, Octave, HasOctave
	err = g.AddStruct(reflect.TypeFor[core.Pitch](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	// Type, Dots
	err = g.AddStruct(reflect.TypeFor[core.Duration](),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	// Kind, Pitch, Duration, Measure, Offset
	err = g.AddStruct(reflect.TypeFor[core.Event](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	// Name, Clef, Elements
	err = g.AddStruct(reflect.TypeFor[core.Part](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	// Id, Title, Composer, Parts
	err = g.AddStruct(reflect.TypeFor[core.Score](),
		structops.WithField(),
		structops.WithField(),
		structops.WithField(),
		structops.WithField())
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
