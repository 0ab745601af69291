package models

// DefaultRecords возвращает встроенные записи для первичного заполнения архива.
// Каждый вызов отдаёт новые копии.
func DefaultRecords() []Record {
	return []Record{
		{
			ID:          "nordic-silence",
			Title:       "Nordic Silence",
			Subtitle:    "Minimalist living with soft-diffused morning light",
			Description: "A study in monochromatic textures and spatial breathing. This project explores the intersection of raw concrete and warm oak.",
			MainImage:   "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?auto=format&fit=crop&q=80&w=1600",
			Gallery: []string{
				"https://images.unsplash.com/photo-1600210492486-724fe5c67fb0?auto=format&fit=crop&q=80&w=1600",
				"https://images.unsplash.com/photo-1600607687920-4e2a09cf159d?auto=format&fit=crop&q=80&w=1600",
				"https://images.unsplash.com/photo-1600566752355-35792bedcfea?auto=format&fit=crop&q=80&w=1600",
			},
			Hotspots: []Hotspot{
				{ID: "1", X: 30, Y: 60, Label: "Børge Mogensen Chair", Description: "Hand-crafted oak frame with natural leather upholstery, adding organic warmth to the cool concrete."},
				{ID: "2", X: 70, Y: 40, Label: "Louvered Window", Description: "Strategic timber slats that fragment the morning light into architectural shadows."},
				{ID: "3", X: 50, Y: 80, Label: "Seamless Concrete", Description: "Polished micro-cement finish with zero visible joints for an infinite floor feel."},
			},
			Prompts: PromptSet{
				Lighting:    "Volumetric morning sunlight, soft-diffused through timber slats, high-contrast shadows, cinematic atmosphere, 8k, ray tracing.",
				Composition: "Eye-level architectural photography, wide-angle lens, symmetrical balance, negative space focus, clean lines.",
				Materials:   "Polished micro-cement floor, light white oak grain, bouclé fabric texture, brushed steel accents.",
				Camera:      "Phase One XF, 35mm lens, f/8, ISO 100, professional interior photography style.",
				Negative:    "Blurry, distorted furniture, messy, cluttered, dark, low resolution, oversaturated.",
			},
		},
		{
			ID:          "zenith-penthouse",
			Title:       "Zenith Penthouse",
			Subtitle:    "Sophisticated dark wood and dramatic shadows",
			Description: "An exploration of obsidian tones and metallic highlights, designed for late-night city viewing.",
			MainImage:   "https://images.unsplash.com/photo-1618221195710-dd6b41faaea6?auto=format&fit=crop&q=80&w=1600",
			Gallery: []string{
				"https://images.unsplash.com/photo-1618221195710-dd6b41faaea6?auto=format&fit=crop&q=80&w=1600",
				"https://images.unsplash.com/photo-1616486338812-3dadae4b4ace?auto=format&fit=crop&q=80&w=1600",
				"https://images.unsplash.com/photo-1616137466211-f939a420be84?auto=format&fit=crop&q=80&w=1600",
			},
			Hotspots: []Hotspot{
				{ID: "h1", X: 45, Y: 55, Label: "Marble Coffee Table", Description: "Italian Nero Marquina marble with deep white veining, reflecting ambient ceiling lights."},
				{ID: "h2", X: 20, Y: 30, Label: "Ambient LED Strips", Description: "Recessed 2700K warm lighting providing a floating effect to the cabinetry."},
			},
			Prompts: PromptSet{
				Lighting:    "Moody low-key lighting, ambient warm glows, city lights reflection, dramatic chiaroscuro, photorealistic.",
				Composition: "Low angle shot, emphasizing ceiling height, leading lines towards the window view.",
				Materials:   "Dark walnut wood, black marble, brass trim, velvet curtains.",
				Camera:      "Hasselblad H6D, 50mm, f/11, long exposure.",
				Negative:    "Sunlight, bright, colorful, cheap furniture, plastic.",
			},
		},
	}
}
