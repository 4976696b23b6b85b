package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const bannerText = `
███████╗ █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗████████╗██████╗ ███████╗███╗   ██╗██████╗ ███████╗
██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝╚══██╔══╝██╔══██╗██╔════╝████╗  ██║██╔══██╗██╔════╝
███████╗███████║██║     ███████║██████╔╝ ╚████╔╝    ██║   ██████╔╝█████╗  ██╔██╗ ██║██║  ██║███████╗
╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝     ██║   ██╔══██╗██╔══╝  ██║╚██╗██║██║  ██║╚════██║
███████║██║  ██║███████╗██║  ██║██║  ██║   ██║      ██║   ██║  ██║███████╗██║ ╚████║██████╔╝███████║
╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═════╝ ╚══════╝
 APEGA salary survey pipeline
`

// ColorizeText applies a random color fade to the input text.
func ColorizeText(text string) string {
	source := rand.NewSource(time.Now().UnixNano())
	random := rand.New(source)

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	strs := strings.Split(text, "")

	var coloredText string
	for i := 0; i < len(text); i++ {
		if i < len(strs) {
			coloredText += startColor.Fade(0, float32(len(text)), float32(i%(len(text)/2)), firstPoint).Sprint(strs[i])
		}
	}

	return coloredText
}

// PrintBanner displays the application banner.
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// ColorizeSalary colors a salary figure by where it sits in the survey's CAD
// ranges.
func ColorizeSalary(salary int) string {
	formatted := fmt.Sprintf("$%s", humanize.Comma(int64(salary)))
	switch {
	case salary >= 200000:
		return pterm.Green(formatted)
	case salary >= 120000:
		return pterm.LightGreen(formatted)
	case salary >= 80000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
