// mxbind_generator is the one-shot binding generator: it reflects over a
// native operator-registry snapshot, filters and normalizes the operators per
// target surface, and splices the generated Go source into the surface
// skeletons.
//
// It doubles as the ownership-manifest tool: -owners reports or lints the
// CODEOWNERS-style routing table that accompanies the binding source tree.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/mxbind/mxbind/internal/descriptor"
	"github.com/mxbind/mxbind/internal/emit"
	"github.com/mxbind/mxbind/internal/opregistry"
	"github.com/mxbind/mxbind/internal/ownership"
	"github.com/mxbind/mxbind/internal/surface"
)

var (
	flagRegistry = flag.String("registry", "", "Path to the operator registry snapshot (JSON). Required for generation.")
	flagSurfaces = flag.String("surfaces", "graph,tensor", "Comma-separated target surfaces to generate: graph, tensor, contrib and/or bridge.")
	flagPolicy   = flag.String("policy", "", "Path to the YAML surface policy with the deny-list for hand-written "+
		"bindings and the allow-list of internal operators.")
	flagSkeleton = flag.String("skeleton", "", "Go skeleton file the generated members are spliced into. "+
		"Only valid when a single surface is selected.")
	flagTarget = flag.String("target", "", "Name of the struct or interface in -skeleton to splice into. "+
		"Empty splices at package level.")
	flagOut = flag.String("out", ".", "Directory the generated files are written to.")

	flagOwners      = flag.String("owners", "", "Path of the ownership manifest: report on it instead of generating bindings.")
	flagCheckOwners = flag.Bool("check_owners", false, "With -owners, lint the manifest and exit non-zero on problems.")
	flagWho         = flag.String("who", "", "With -owners, print the owners of the given repository path.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagOwners != "" {
		ownersReport(*flagOwners)
		return
	}
	if *flagRegistry == "" {
		klog.Errorf("Missing -registry snapshot to generate from. See 'mxbind_generator -help'.")
		os.Exit(1)
	}
	generate()
}

func generate() {
	snapshot := must.M1(opregistry.LoadSnapshot(*flagRegistry))
	reg := must.M1(snapshot.Registry())
	klog.V(1).Infof("mxbind_generator: %d operators in %s snapshot", len(reg.OperatorNames()), snapshot.Label())

	funcs := descriptor.Reflect(reg)
	reflected := len(funcs)
	funcs = descriptor.UnifyRandom(funcs)
	klog.V(1).Infof("mxbind_generator: %d descriptors after random-sampler unification", len(funcs))

	var policy *surface.Policy
	if *flagPolicy != "" {
		policy = must.M1(surface.LoadPolicy(*flagPolicy))
	}

	surfaces := parseSurfaces(*flagSurfaces)
	if *flagSkeleton != "" && len(surfaces) != 1 {
		klog.Errorf("-skeleton requires exactly one surface, got %q.", *flagSurfaces)
		os.Exit(1)
	}

	table := newSummaryTable()
	table.Row("Surface", "Generated", "Filtered out", "File")
	for _, s := range surfaces {
		filtered := surface.Filter(funcs, s, policy)

		opts := emit.Options{Surface: s, Framework: snapshot.Label()}
		if *flagSkeleton != "" {
			opts.Target = emit.AnalyzeSkeleton(*flagSkeleton, *flagTarget)
		}
		src, fileName := must.M2(emit.Generate(filtered, opts))

		outPath := filepath.Join(*flagOut, fileName)
		must.M(os.WriteFile(outPath, src, 0644))
		fmt.Printf("✅ mxbind_generator:\tsuccessfully generated %s\n", outPath)

		table.Row(s.String(),
			humanize.Comma(int64(len(filtered))),
			humanize.Comma(int64(len(funcs)-len(filtered))),
			outPath)
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Generated from %s (%s operators)",
		snapshot.Label(), humanize.Comma(int64(reflected)))))
	fmt.Println(table.Render())
}

func parseSurfaces(list string) []surface.Surface {
	var surfaces []surface.Surface
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		surfaces = append(surfaces, must.M1(surface.Parse(name)))
	}
	if len(surfaces) == 0 {
		klog.Errorf("No surfaces selected. See 'mxbind_generator -help'.")
		os.Exit(1)
	}
	return surfaces
}

func ownersReport(manifestPath string) {
	manifest := must.M1(ownership.Load(manifestPath))

	if *flagWho != "" {
		owners := manifest.Match(*flagWho)
		if len(owners) == 0 {
			fmt.Printf("%s: no owners\n", *flagWho)
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", *flagWho, strings.Join(owners, " "))
		return
	}

	if *flagCheckOwners {
		problems := manifest.Lint()
		for _, problem := range problems {
			klog.Errorf("%s: %s", manifestPath, problem)
		}
		if len(problems) > 0 {
			os.Exit(1)
		}
		fmt.Printf("✅ mxbind_generator:\t%s is clean (%s rules)\n",
			manifestPath, humanize.Comma(int64(len(manifest.Rules))))
		return
	}

	fmt.Println(titleStyle.Render("Ownership"))
	table := newSummaryTable()
	table.Row("Pattern", "Owners")
	for _, rule := range manifest.Rules {
		table.Row(rule.Pattern, strings.Join(rule.Owners, " "))
	}
	fmt.Println(table.Render())
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newSummaryTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row == 1 {
				return headerRowStyle
			}
			if row%2 == 0 {
				return oddRowStyle
			}
			return evenRowStyle
		})
}
