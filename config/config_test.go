package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/config"
)

const sampleTOML = `
[network]
host = "127.0.0.1"
port = 8901
header = 64
format = "json"
max_port_search_range = 10

[freecad]
deg_to_rad_tolerance = 0.01
placement_tolerance = 50
arc_epsilon = 20

[freecad.models_path]
default = "/var/lib/boardbridge/models"
spare = "/mnt/extra/models"
`

var _ = Describe("Load", func() {
	var path string

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		path = filepath.Join(dir, "boardbridge.toml")
		Expect(os.WriteFile(path, []byte(sampleTOML), 0o644)).To(Succeed())
	})

	It("parses every enumerated key", func() {
		f, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Network.Host).To(Equal("127.0.0.1"))
		Expect(f.Network.Port).To(Equal(8901))
		Expect(f.Network.Header).To(Equal(64))
		Expect(f.Network.Format).To(Equal("json"))
		Expect(f.Network.MaxPortSearchRange).To(Equal(10))
		Expect(f.FreeCAD.DegToRadTolerance).To(Equal(0.01))
		Expect(f.FreeCAD.PlacementTolerance).To(Equal(50))
		Expect(f.FreeCAD.ArcEpsilon).To(Equal(20))
		Expect(f.FreeCAD.ModelsPath).To(Equal(map[string]string{
			"default": "/var/lib/boardbridge/models",
			"spare":   "/mnt/extra/models",
		}))
	})

	It("returns an error for a missing file", func() {
		_, err := config.Load(filepath.Join(filepath.Dir(path), "missing.toml"))
		Expect(err).To(HaveOccurred())
	})

	It("builds Network and FreeCAD values via Builder", func() {
		f, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())

		b := f.Builder()
		net := b.BuildNetwork()
		Expect(net).To(Equal(config.Network{
			Host:               "127.0.0.1",
			Port:               8901,
			Header:             64,
			Format:             "json",
			MaxPortSearchRange: 10,
		}))

		fc := b.BuildFreeCAD()
		Expect(fc.DegToRadTolerance).To(Equal(0.01))
		Expect(fc.PlacementTolerance).To(Equal(50))
		Expect(fc.ArcEpsilon).To(Equal(20))
	})
})

var _ = Describe("Builder", func() {
	It("defaults network.format to json when left unset", func() {
		net := config.Builder{}.WithHost("h").WithPort(1).BuildNetwork()
		Expect(net.Format).To(Equal("json"))
	})

	It("is reusable: each With* returns an independent copy", func() {
		base := config.Builder{}.WithHost("shared").WithPort(100)
		a := base.WithPort(200).BuildNetwork()
		b := base.WithPort(300).BuildNetwork()

		Expect(a.Port).To(Equal(200))
		Expect(b.Port).To(Equal(300))
		Expect(base.BuildNetwork().Port).To(Equal(100))
	})

	It("panics on an out-of-range port", func() {
		Expect(func() {
			config.Builder{}.WithPort(70000)
		}).To(Panic())
	})

	It("panics on an unsupported network.format", func() {
		Expect(func() {
			config.Builder{}.WithFormat("xml")
		}).To(Panic())
	})

	It("panics on a negative tolerance", func() {
		Expect(func() {
			config.Builder{}.WithPlacementTolerance(-1)
		}).To(Panic())
	})

	It("projects FreeCAD into diff.Tolerances, leaving ArcEpsilon unconsumed", func() {
		fc := config.Builder{}.
			WithDegToRadTolerance(0.25).
			WithPlacementTolerance(75).
			WithArcEpsilon(5).
			BuildFreeCAD()

		tol := fc.Tolerances()
		Expect(tol.PosTolerance).To(Equal(75))
		Expect(tol.RotTolerance).To(Equal(0.25))
	})

	It("copies the models_path map so the builder cannot alias caller state", func() {
		paths := map[string]string{"default": "/a"}
		fc := config.Builder{}.WithModelsPath(paths).BuildFreeCAD()
		paths["default"] = "/mutated"
		Expect(fc.ModelsPath["default"]).To(Equal("/a"))
	})
})
