package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thGradientTheme(),
		thGlassmorphismTheme(),
		thCyberpunkTheme(),
		thMinimalTheme(),
	} {
		thRegister(t)
	}
}

// thGradientTheme returns the purple-pink-blue diagonal gradient.
func thGradientTheme() Theme {
	return Theme{
		Name:  Gradient,
		Label: "Gradient",
		Background: []Stop{
			{0, "#9333ea"},
			{0.5, "#db2777"},
			{1, "#2563eb"},
		},
		Heading: "#ffffff",
		Title:   "#ffffffe6",
		Caption: "#ffffff99",
		Stat:    "#ffffffcc",

		BadgeFill:        "#ffffff33",
		BadgeBorder:      "#ffffff4d",
		BadgeText:        "#ffffff",
		BadgeBorderWidth: 1,

		PhotoFill:   "#ffffff0d",
		PhotoBorder: "#ffffff4d",
		PhotoLabel:  "#ffffff66",

		Geometry: DefaultGeometry(),
	}
}

// thGlassmorphismTheme returns the soft blue-to-purple frosted style.
func thGlassmorphismTheme() Theme {
	return Theme{
		Name:  Glassmorphism,
		Label: "Glass",
		Background: []Stop{
			{0, "#60a5fa"},
			{1, "#a855f7"},
		},
		Heading: "#ffffff",
		Title:   "#ffffffe6",
		Caption: "#ffffff99",
		Stat:    "#ffffffcc",

		BadgeFill:        "#ffffff1a",
		BadgeBorder:      "#ffffff33",
		BadgeText:        "#ffffff",
		BadgeBorderWidth: 1,

		PhotoFill:   "#ffffff0d",
		PhotoBorder: "#ffffff4d",
		PhotoLabel:  "#ffffff66",

		Geometry: DefaultGeometry(),
	}
}

// thCyberpunkTheme returns black with cyan neon accents.
func thCyberpunkTheme() Theme {
	return Theme{
		Name:  Cyberpunk,
		Label: "Cyberpunk",
		Background: []Stop{
			{0, "#000000"},
			{1, "#000000"},
		},
		Heading: "#22d3ee",
		Title:   "#67e8f9",
		Caption: "#67e8f9",
		Stat:    "#67e8f9",

		BadgeFill:        "#22d3ee33",
		BadgeBorder:      "#22d3ee",
		BadgeText:        "#22d3ee",
		BadgeBorderWidth: 2,

		PhotoFill:   "#22d3ee0d",
		PhotoBorder: "#22d3ee80",
		PhotoLabel:  "#67e8f999",

		Geometry: DefaultGeometry(),
	}
}

// thMinimalTheme returns the near-black slate style.
func thMinimalTheme() Theme {
	return Theme{
		Name:  Minimal,
		Label: "Minimal",
		Background: []Stop{
			{0, "#111827"},
			{1, "#1f2937"},
		},
		Heading: "#ffffff",
		Title:   "#ffffffe6",
		Caption: "#ffffff99",
		Stat:    "#ffffffcc",

		BadgeFill:        "#374151",
		BadgeBorder:      "#4b5563",
		BadgeText:        "#ffffff",
		BadgeBorderWidth: 1,

		PhotoFill:   "#ffffff0d",
		PhotoBorder: "#ffffff4d",
		PhotoLabel:  "#ffffff66",

		Geometry: DefaultGeometry(),
	}
}
