package site

// Testimonials are quoted verbatim and not translated.
var testimonials = []Testimonial{
	{
		Name:    "Sarah Johnson",
		Role:    "CEO, TechStart Inc.",
		Content: "This platform has completely transformed how we operate. The innovative solutions and community support are unmatched.",
		Rating:  5,
		Avatar:  "SJ",
	},
	{
		Name:    "Michael Chen",
		Role:    "Founder, InnovateLab",
		Content: "The best investment we've made. Easy to use, powerful features, and exceptional support. Highly recommended!",
		Rating:  5,
		Avatar:  "MC",
	},
	{
		Name:    "Emily Rodriguez",
		Role:    "Director, GrowthCo",
		Content: "Outstanding platform that scales with our business. The team behind this truly understands what businesses need.",
		Rating:  5,
		Avatar:  "ER",
	},
	{
		Name:    "David Kim",
		Role:    "CTO, ScaleUp Solutions",
		Content: "Reliable, secure, and innovative. This has become an essential part of our daily operations.",
		Rating:  5,
		Avatar:  "DK",
	},
}
