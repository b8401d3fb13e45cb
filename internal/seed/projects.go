package seed

import "github.com/Baaaki/portfolio/internal/models"

// SampleProjects returns a fresh copy of the gallery shown on a new install.
func SampleProjects() []models.Project {
	return []models.Project{
		{
			Title:       "E-commerce Empire Builder",
			Description: "When online shopping carts were abandoning customers like bad dates, I built a MERN stack powerhouse that turns browsers into buyers. Seamless payments, secure auth, and a dashboard that makes managing inventory feel like playing a video game.",
			Story: models.ProjectStory{
				Problem:  "E-commerce sites losing customers at checkout due to clunky UX",
				Solution: "Intuitive MERN stack platform with Stripe integration",
				Approach: "Mobile-first design with real-time inventory and secure payments",
			},
			Image:    "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=500&fit=crop&crop=center",
			Github:   "https://github.com/rejinshrestha/ecommerce",
			Live:     "https://ecommerce-rejin.herokuapp.com",
			Tech:     models.TechList{"React", "Node.js", "MongoDB", "Stripe"},
			Gradient: "from-blue-500 to-purple-600",
			Category: "Full-Stack",
		},
		{
			Title:       "Real-Time Task Slayer",
			Description: "Teams drowning in scattered to-do lists and missed deadlines? Enter the collaborative beast I built: Socket.io powered, MongoDB fueled, with live updates that make project management feel like a multiplayer game.",
			Story: models.ProjectStory{
				Problem:  "Teams struggling with outdated task management tools",
				Solution: "Real-time collaborative platform with live notifications",
				Approach: "WebSocket integration with responsive design and offline support",
			},
			Image:    "https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=800&h=500&fit=crop&crop=center",
			Github:   "https://github.com/rejinshrestha/taskmanager",
			Live:     "https://taskmanager-rejin.netlify.app",
			Tech:     models.TechList{"React", "Socket.io", "MongoDB", "Express"},
			Gradient: "from-green-500 to-blue-600",
			Category: "Real-Time",
		},
		{
			Title:       "Weather Wizard",
			Description: "Gone are the days of staring out windows wondering if you need that umbrella. My weather dashboard pulls real-time data from OpenWeatherMap API and presents it with such elegance that even meteorologists get jealous.",
			Story: models.ProjectStory{
				Problem:  "Clunky weather apps with poor UX and limited data",
				Solution: "Beautiful, responsive dashboard with accurate forecasts",
				Approach: "API integration with location services and elegant animations",
			},
			Image:    "https://images.unsplash.com/photo-1504608524841-42fe6f032b4b?w=800&h=500&fit=crop&crop=center",
			Github:   "https://github.com/rejinshrestha/weatherapp",
			Live:     "https://weather-rejin.vercel.app",
			Tech:     models.TechList{"React", "API", "TailwindCSS", "Weather"},
			Gradient: "from-cyan-500 to-blue-600",
			Category: "API Integration",
		},
		{
			Title:       "Blog Builder Extraordinaire",
			Description: "Writers deserve better than complicated CMS platforms. I crafted a blogging universe where rich text editing feels natural, comments spark conversations, and the admin experience is so smooth it should be illegal.",
			Story: models.ProjectStory{
				Problem:  "Complex blogging platforms intimidating content creators",
				Solution: "Intuitive MERN stack blog with rich editing capabilities",
				Approach: "User-centered design with secure authentication and engaging UX",
			},
			Image:    "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=800&h=500&fit=crop&crop=center",
			Github:   "https://github.com/rejinshrestha/blogplatform",
			Live:     "https://blog-rejin.herokuapp.com",
			Tech:     models.TechList{"React", "MongoDB", "Express", "JWT"},
			Gradient: "from-purple-500 to-pink-600",
			Category: "Content Platform",
		},
	}
}
