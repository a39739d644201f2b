// Command panorama drives two-view feature detection, matching and robust
// model estimation over a pair of still images, printing the recovered
// homography (or, with -model=fundamental, the fundamental matrix) and its
// inlier count. It is a thin CLI around pkg/vision/sift, pkg/vision/match
// and pkg/vision/usac -- the panorama compositor itself is out of scope.
package main

import (
	"flag"
	"fmt"
	"os"

	cv "gocv.io/x/gocv"

	coreimage "github.com/itohio/nexusvision/pkg/core/image"
	"github.com/itohio/nexusvision/pkg/core/options"
	"github.com/itohio/nexusvision/pkg/vision/geometry"
	"github.com/itohio/nexusvision/pkg/vision/match"
	"github.com/itohio/nexusvision/pkg/vision/sift"
	"github.com/itohio/nexusvision/pkg/vision/usac"
)

func main() {
	left := flag.String("l", "", "left image path")
	right := flag.String("r", "", "right image path")
	model := flag.String("model", "homography", "model to estimate: homography or fundamental")

	doubleImage := flag.Bool("double-image", true, "upsample input 2x before building the scale-space")
	nScalesPerOctave := flag.Int("n-scales", 3, "number of scales per octave")
	sigma0 := flag.Float64("sigma0", 1.6, "base Gaussian blur sigma")
	kernelTruncationFactor := flag.Float64("kernel-truncation-factor", 4.0, "Gaussian kernel truncation factor")
	borderDistance := flag.Int("border-distance", 5, "minimum distance from image border, in pixels")
	peakThreshold := flag.Float64("peak-threshold", 0.08, "DoG extremum rejection threshold")
	edgeThreshold := flag.Float64("edge-threshold", 10.0, "principal curvature ratio rejection threshold")
	magnificationFactor := flag.Float64("magnification-factor", 3.0, "descriptor sampling window magnification factor")

	snnThreshold := flag.Float64("snn-threshold", 0.8, "second-nearest-neighbor ratio test threshold")

	ransacMaxIter := flag.Int("ransac-max-n-iterations", 2000, "maximum USAC iterations")
	ransacTolerance := flag.Float64("ransac-inlier-threshold", 3.0, "USAC inlier distance/residual threshold")

	configPath := flag.String("config", "", "load a saved YAML parameter bundle; explicit flags still override it")
	saveConfigPath := flag.String("save-config", "", "write the effective parameter bundle to this YAML path and exit")

	help := flag.Bool("help", false, "show help message")

	flag.Parse()

	if *help {
		flag.PrintDefaults()
		return
	}

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "panorama: %v\n", err)
			os.Exit(1)
		}
		applyConfigDefaults(map[string]flagValue{
			"double-image":             {doubleImage, &cfg.DoubleImage},
			"n-scales":                 {nScalesPerOctave, &cfg.NScalesPerOctave},
			"sigma0":                   {sigma0, &cfg.Sigma0},
			"kernel-truncation-factor": {kernelTruncationFactor, &cfg.KernelTruncationFactor},
			"border-distance":          {borderDistance, &cfg.BorderDistance},
			"peak-threshold":           {peakThreshold, &cfg.PeakThreshold},
			"edge-threshold":           {edgeThreshold, &cfg.EdgeThreshold},
			"magnification-factor":     {magnificationFactor, &cfg.MagnificationFactor},
			"snn-threshold":            {snnThreshold, &cfg.SNNThreshold},
			"ransac-max-n-iterations":  {ransacMaxIter, &cfg.RansacMaxNIterations},
			"ransac-inlier-threshold":  {ransacTolerance, &cfg.RansacInlierThreshold},
		})
	}

	if *saveConfigPath != "" {
		cfg := config{
			DoubleImage:            *doubleImage,
			NScalesPerOctave:       *nScalesPerOctave,
			Sigma0:                 *sigma0,
			KernelTruncationFactor: *kernelTruncationFactor,
			BorderDistance:         *borderDistance,
			PeakThreshold:          *peakThreshold,
			EdgeThreshold:          *edgeThreshold,
			MagnificationFactor:    *magnificationFactor,
			SNNThreshold:           *snnThreshold,
			RansacMaxNIterations:   *ransacMaxIter,
			RansacInlierThreshold:  *ransacTolerance,
		}
		if err := saveConfig(*saveConfigPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "panorama: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *left == "" || *right == "" {
		fmt.Fprintln(os.Stderr, "panorama: -l and -r image paths are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	siftOpts := []options.Option{
		sift.WithDoubleImage(*doubleImage),
		sift.WithNScalesPerOctave(*nScalesPerOctave),
		sift.WithSigma0(float32(*sigma0)),
		sift.WithKernelTruncationFactor(float32(*kernelTruncationFactor)),
		sift.WithBorderDistance(*borderDistance),
		sift.WithPeakThreshold(float32(*peakThreshold)),
		sift.WithEdgeThreshold(float32(*edgeThreshold)),
		sift.WithMagnificationFactor(float32(*magnificationFactor)),
	}

	leftImg, err := loadImage(*left)
	if err != nil {
		fmt.Fprintf(os.Stderr, "panorama: %v\n", err)
		os.Exit(1)
	}
	rightImg, err := loadImage(*right)
	if err != nil {
		fmt.Fprintf(os.Stderr, "panorama: %v\n", err)
		os.Exit(1)
	}

	detector := sift.NewDetector(siftOpts...)
	leftStore := detector.Detect(leftImg)
	rightStore := detector.Detect(rightImg)

	matcher := match.NewMatcher(match.WithRatioThreshold(float32(*snnThreshold)))
	matches := matcher.Match(leftStore, rightStore)

	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "panorama: no matches found")
		os.Exit(1)
	}

	var fitted geometry.Model
	var nInliers int

	switch *model {
	case "homography":
		est := usac.NewHomographyEstimator(matches, float32(*ransacTolerance), *ransacMaxIter)
		fitted, nInliers = est.Estimate()
	case "fundamental":
		est := usac.NewFundamentalEstimator(matches, float32(*ransacTolerance), *ransacMaxIter)
		fitted, nInliers = est.Estimate()
	default:
		fmt.Fprintf(os.Stderr, "panorama: unknown -model %q (want homography or fundamental)\n", *model)
		os.Exit(1)
	}

	fmt.Printf("keypoints: left=%d right=%d matches=%d inliers=%d\n", leftStore.Len(), rightStore.Len(), len(matches), nInliers)
	printModel(fitted)
}

func printModel(m geometry.Model) {
	for row := 0; row < 3; row++ {
		fmt.Printf("%g %g %g\n", m.At(row, 0), m.At(row, 1), m.At(row, 2))
	}
}

// loadImage reads path via gocv, converts to grayscale and returns the
// pixel grid type the detector pipeline operates on. Conversion from gocv's
// Mat happens here, at the CLI boundary, per pkg/core/image's own contract.
func loadImage(path string) (*coreimage.Image, error) {
	mat := cv.IMRead(path, cv.IMReadGrayScale)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image %q", path)
	}
	defer mat.Close()

	rows, cols := mat.Rows(), mat.Cols()
	img, err := coreimage.New(cols, rows, 1, coreimage.UChar)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate image buffer for %q: %w", path, err)
	}

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("failed to access pixel data for %q: %w", path, err)
	}

	srcStride := mat.Step()
	dstStride := img.Stride()
	for y := 0; y < rows; y++ {
		srcRow := data[y*srcStride : y*srcStride+cols]
		copy(img.UChar()[y*dstStride:y*dstStride+cols], srcRow)
	}

	return img, nil
}
