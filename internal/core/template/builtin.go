package template

import (
	"github.com/redwanJemal/renderforge/internal/core/schema"
)

// BuiltinTemplates returns the definitions shipped with the service. The
// server builds its catalog from this list at startup.
func BuiltinTemplates() []Definition {
	return []Definition{
		productLaunch(),
		quoteOfDay(),
		statsRecap(),
		testimonial(),
		announcement(),
	}
}

func allFormats() []Format {
	return []Format{FormatStory, FormatPost, FormatLandscape}
}

func str(name, def string) schema.Field {
	return schema.Field{Name: name, Label: schema.Label(name), Type: schema.TypeString, Default: def}
}

func url(name, def string) schema.Field {
	return schema.Field{Name: name, Label: schema.Label(name), Type: schema.TypeURL, Default: def}
}

func boolean(name string, def bool) schema.Field {
	return schema.Field{Name: name, Label: schema.Label(name), Type: schema.TypeBoolean, Default: def}
}

func colorList(name string, def ...any) schema.Field {
	return schema.Field{
		Name:    name,
		Label:   schema.Label(name),
		Type:    schema.TypeArray,
		Default: def,
		Items:   &schema.Field{Name: "color", Type: schema.TypeColor},
	}
}

func productLaunch() Definition {
	return Definition{
		Meta: Meta{
			ID:   "product-launch",
			Name: "Product Launch",
			Description: "Showcase a product with image, name, price, discount badge, and CTA. " +
				"Multi-scene: intro, product reveal, features, CTA.",
			Category:         "marketing",
			Tags:             []string{"product", "launch", "ecommerce", "promo"},
			SupportedFormats: allFormats(),
			DurationInFrames: 180,
			FPS:              30,
		},
		Schema: schema.Schema{Fields: []schema.Field{
			str("productName", "Premium Wireless Headphones"),
			str("tagline", "Experience Pure Sound"),
			url("productImage", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800"),
			str("price", "$299"),
			str("originalPrice", "$399"),
			str("discount", "25% OFF"),
			{
				Name:    "features",
				Label:   "Features",
				Type:    schema.TypeArray,
				Default: []any{"40h Battery Life", "Active Noise Cancelling", "Premium Hi-Fi Audio"},
				Items:   &schema.Field{Name: "feature", Type: schema.TypeString},
			},
			str("ctaText", "Shop Now"),
			url("logoUrl", ""),
			str("brandName", "AudioPro"),
		}},
	}
}

func quoteOfDay() Definition {
	return Definition{
		Meta: Meta{
			ID:               "quote-of-day",
			Name:             "Quote of the Day",
			Description:      "Elegant animated quote with author attribution, gradient overlay, and beautiful typography.",
			Category:         "social",
			Tags:             []string{"quote", "inspiration", "motivational", "typography"},
			SupportedFormats: allFormats(),
			DurationInFrames: 150,
			FPS:              30,
		},
		Schema: schema.Schema{Fields: []schema.Field{
			str("quote", "The only way to do great work is to love what you do."),
			str("author", "Steve Jobs"),
			str("authorTitle", "Co-founder, Apple"),
			url("backgroundImage", ""),
			colorList("backgroundColors", "#0F172A", "#1E293B", "#334155"),
			boolean("quoteIcon", true),
			boolean("accentLine", true),
		}},
	}
}

func statsRecap() Definition {
	return Definition{
		Meta: Meta{
			ID:   "stats-recap",
			Name: "Stats Recap",
			Description: "Animated counter numbers with labels in a clean grid layout. Perfect for " +
				"year-in-review, milestones, and performance highlights.",
			Category:         "data",
			Tags:             []string{"stats", "numbers", "recap", "counter", "analytics"},
			SupportedFormats: allFormats(),
			DurationInFrames: 180,
			FPS:              30,
		},
		Schema: schema.Schema{Fields: []schema.Field{
			str("title", "2024 Year in Review"),
			str("subtitle", "Our journey in numbers"),
			{
				Name:  "stats",
				Label: "Stats",
				Type:  schema.TypeArray,
				Default: []any{
					map[string]any{"value": float64(12500), "label": "Users Reached", "prefix": "", "suffix": "+"},
					map[string]any{"value": float64(98), "label": "Satisfaction Rate", "prefix": "", "suffix": "%"},
					map[string]any{"value": float64(350), "label": "Projects Delivered", "prefix": "", "suffix": ""},
					map[string]any{"value": 4.9, "label": "Average Rating", "prefix": "", "suffix": "★"},
				},
				Items: &schema.Field{
					Name: "stat",
					Type: schema.TypeObject,
					Fields: []schema.Field{
						{Name: "value", Label: "Value", Type: schema.TypeNumber, Default: float64(0)},
						str("label", ""),
						str("prefix", ""),
						str("suffix", ""),
					},
				},
			},
			colorList("backgroundColors", "#1E293B", "#0F172A"),
		}},
	}
}

func testimonial() Definition {
	rMin, rMax := 0.0, 5.0
	return Definition{
		Meta: Meta{
			ID:               "testimonial",
			Name:             "Testimonial",
			Description:      "Customer testimonial with photo, quote, star rating, and company branding. Clean slide-in animations.",
			Category:         "social-proof",
			Tags:             []string{"testimonial", "review", "customer", "rating", "social-proof"},
			SupportedFormats: allFormats(),
			DurationInFrames: 150,
			FPS:              30,
		},
		Schema: schema.Schema{Fields: []schema.Field{
			str("quote", "This product completely transformed our workflow. The team is more productive "+
				"than ever, and the results speak for themselves."),
			str("authorName", "Sarah Johnson"),
			str("authorRole", "Head of Product"),
			str("authorCompany", "TechCorp Inc."),
			url("authorImage", "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200"),
			url("companyLogo", ""),
			{Name: "rating", Label: "Rating", Type: schema.TypeNumber, Default: float64(5), Min: &rMin, Max: &rMax},
			colorList("backgroundColors", "#F8FAFC", "#EFF6FF"),
		}},
	}
}

func announcement() Definition {
	return Definition{
		Meta: Meta{
			ID:   "announcement",
			Name: "Announcement",
			Description: "Bold, attention-grabbing announcement with headline, subtitle, date/details, " +
				"and CTA. Perfect for launches, events, and news.",
			Category:         "marketing",
			Tags:             []string{"announcement", "event", "launch", "news", "headline"},
			SupportedFormats: allFormats(),
			DurationInFrames: 150,
			FPS:              30,
		},
		Schema: schema.Schema{Fields: []schema.Field{
			str("headline", "Something Big Is Coming"),
			str("subtitle", "Get ready for a game-changing experience"),
			str("date", "March 15, 2025"),
			str("details", "Join us for the reveal"),
			str("ctaText", "Learn More"),
			colorList("backgroundColors", "#7C3AED", "#2563EB", "#0EA5E9"),
			url("backgroundImage", ""),
			url("logoUrl", ""),
			str("badge", "NEW"),
		}},
	}
}
