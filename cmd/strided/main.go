// Package main provides the strided CLI: inspect slice geometry and run a demo.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/strided/tensor"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Println("strided - strided tensor views")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                          Show version")
	fmt.Println("  inspect -shape 5,5,5 -slice 1...4,:,:")
	fmt.Println("                                   Print the geometry of a slice")
	fmt.Println("  demo                             Slice, assign and extract matrices")
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("strided %s\n", version)
	case "inspect":
		err = inspect(args[1:])
	case "demo":
		demo()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		klog.Exitf("%s: %+v", args[0], err)
	}
}

func parseShape(s string) (tensor.Shape, error) {
	var shape tensor.Shape
	for _, part := range strings.Split(s, ",") {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dimension %q in shape %q", part, s)
		}
		shape = append(shape, dim)
	}
	return shape, nil
}

func inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	shapeFlag := fs.String("shape", "5,5,5", "comma-separated dimensions of the base tensor")
	sliceFlag := fs.String("slice", "", "comma-separated indices: i, lo...hi or :")
	if err := fs.Parse(args); err != nil {
		return err
	}

	shape, err := parseShape(*shapeFlag)
	if err != nil {
		return err
	}
	base, err := tensor.PackedGeometry(shape)
	if err != nil {
		return err
	}
	specs, err := tensor.ParseSpecs(*sliceFlag)
	if err != nil {
		return err
	}
	if specs == nil {
		specs = make([]tensor.Index, base.Rank())
	}
	view, err := tensor.ComputeSliceGeometry(base, specs)
	if err != nil {
		return err
	}

	lo, hi := view.Footprint()
	fmt.Printf("base:       shape=%v strides=%v (%s float64)\n",
		[]int(base.Shape), base.Strides, humanize.Bytes(uint64(shape.NumElements()*8))) //nolint:gosec // validated shape
	fmt.Printf("view:       shape=%v strides=%v offset=%d\n", []int(view.Shape), view.Strides, view.Offset)
	fmt.Printf("elements:   %s\n", humanize.Comma(int64(view.Shape.NumElements())))
	fmt.Printf("footprint:  [%d, %d]\n", lo, hi)
	fmt.Printf("contiguous: %t\n", view.IsContiguous())
	return nil
}

func demo() {
	diag := must.M1(tensor.Full[float64](tensor.Shape{5, 5, 5}, 0))
	for i := 0; i < 5; i++ {
		diag.Set(1, i, i, i)
	}
	fmt.Println(diag)
	fmt.Printf("diag[0,1,1] = %g\n", diag.At(0, 1, 1))
	diag.Set(16, 0, 1, 1)
	fmt.Printf("diag[0,1,1] = %g after set\n", diag.At(0, 1, 1))

	for _, expr := range []string{"1...4, :, :", "1, 4, :", ":, 3...4, :", "1...2, 3...4, 1"} {
		specs := must.M1(tensor.ParseSpecs(expr))
		view := must.M1(diag.Slice(specs...))
		fmt.Printf("diag[%s] shape=%v contiguous=%t\n", expr, view.Shape(), view.IsContiguous())
		view.Release()
	}

	d4 := must.M1(tensor.Full[float64](tensor.Shape{2, 2, 2, 2}, 0))
	d4.Set(1, 0, 0, 0, 0)
	d4.Set(1, 1, 1, 1, 1)
	m := must.M1(d4.AsMatrix(tensor.Interval(1, 1), tensor.Interval(1, 1), tensor.Interval(0, 1), tensor.Interval(0, 1)))
	fmt.Println(m)

	src := tensor.MustFromSlice(tensor.Shape{2, 2, 2, 2}, []float64{
		6.4, 2.4, 8.6, 0.2, 6.4, 1.5, 7.3, 1.1, 6.0, 1.4, 7.8, 9.2, 4.2, 6.1, 8.7, 3.6,
	})
	must.M(d4.SliceAssign(
		src.MustSlice(tensor.Point(0), tensor.Interval(0, 1), tensor.All, tensor.Interval(0, 1)),
		tensor.Point(1), tensor.All, tensor.Interval(0, 1), tensor.Interval(0, 1)))
	fmt.Printf("after assignment: %v\n", d4.Data())
}
