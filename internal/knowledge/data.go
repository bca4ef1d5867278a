package knowledge

// Default is the knowledge base served by the portfolio.
var Default = Base{
	Person: Person{
		Name:     "Daffa Albari",
		Title:    "AI Engineer & LLM Specialist",
		Email:    "daffaa.albari@gmail.com",
		Phone:    "+62 85295451122",
		LinkedIn: "https://www.linkedin.com/in/daaffalbari/",
		GitHub:   "https://github.com/daaffalbari",
		Location: "Indonesia",
		Bio:      "Building intelligent systems at the intersection of AI and infrastructure. Specializing in LLM agents, RAG architectures, and scalable ML deployments.",
		Tagline:  "Turning complex AI into elegant solutions",
	},
	Experiences: []Experience{
		{
			ID:       1,
			Role:     "AI Engineer/Researcher",
			Company:  "PT. Indonesia Indicator",
			Location: "Tangerang Selatan, Indonesia",
			Period:   "Jan 2025 – Present",
			Type:     EmploymentCurrent,
			Highlights: []string{
				"Built enterprise-grade internal LLM agent framework supporting 4+ model providers with native tool calling, RAG, MCP server, memory persistence, and multi-agent orchestration — reducing development time 5–10× versus LangChain and cutting memory usage by 70%",
				"Cut infrastructure costs 75% by optimizing LLM observability with OpenTelemetry + Langfuse; built production-grade LLM serving layer on Kubernetes with automated CI/CD pipelines",
				"Fine-tuned Qwen-image editing model for architectural design automation, reducing manual design iteration from hours to minutes",
				"Designed and deployed AI agents for automated report and presentation generation, empowering teams to produce client-facing deliverables in minutes",
				"Implemented Graph RAG architecture using Memgraph for government and defense sectors — reducing LLM hallucination to near-zero on structural queries",
				"Architected AI-powered no-code app builder enabling mobile/web app generation via natural language",
			},
			Skills: []string{"LLM Agents", "RAG", "Kubernetes", "Langfuse", "Graph RAG", "MCP"},
		},
		{
			ID:       2,
			Role:     "Data Scientist",
			Company:  "UNIKOM CODELABS",
			Location: "Bandung, Indonesia",
			Period:   "Jul 2021 – Oct 2024",
			Type:     EmploymentPast,
			Highlights: []string{
				"Developed SociaLabs, a social media analytics platform integrating topic modeling, sentiment analysis, and Social Network Analysis with RAG-powered AI chatbot",
				"Built Agrimate, an Android app for farmers with 95% accuracy crop disease detection and LLM-generated recommendations",
				"Created MainChick, an AI-driven poultry management system with environmental correlation analysis and LLM chatbot",
				"Automated end-to-end ML model deployment using Docker, FastAPI, Flask, AWS, and Google Cloud",
			},
			Skills: []string{"Python", "TensorFlow", "Docker", "AWS", "GCP", "FastAPI"},
		},
		{
			ID:       3,
			Role:     "Machine Learning Engineer",
			Company:  "Bangkit Academy",
			Location: "Indonesia",
			Period:   "Feb 2023 – Jul 2023",
			Type:     EmploymentPast,
			Highlights: []string{
				"Selected as top candidate among 20,000+ applicants for the Machine Learning path in Indonesia's premier tech talent program",
				"Built an Android application with personalized pet recommendations and CNN-powered breed recognition achieving 98% accuracy",
				"Led cross-functional collaboration with Cloud and Mobile teams; containerized ML models with Docker and deployed on GCP",
				"Earned TensorFlow Developer Certificate—validating production-level expertise in CV, CNN, NLP, and time-series forecasting",
			},
			Skills: []string{"TensorFlow", "CNN", "Docker", "GCP", "Android"},
		},
	},
	Projects: []Project{
		{
			ID:          1,
			Title:       "Agrimate",
			Description: "A multiplatform app enabling smart farming through ML, AI, and IoT integration. Features disease detection (CNN), crop recommendations, market price predictions, and automated IoT-based watering systems.",
			Tags:        []string{"CNN", "TensorFlow", "IoT", "Android", "LLM"},
			Achievements: []string{
				"Top 20 International Microsoft Imagine Cup 2024",
				"Merit Awards APICTA Hong Kong",
				"PKM Funding 2024",
			},
			Role:     "ML/AI Engineer",
			Category: "Mobile/ML",
			Featured: true,
			Links:    map[string]string{"video": "https://www.youtube.com/watch?v=rNzA4hNCjNk"},
		},
		{
			ID:          2,
			Title:       "MainChick",
			Description: "A comprehensive broiler management platform integrating real-time monitoring, ML, and AI. Features environmental tracking, disease detection, and an AI chatbot for expert poultry advice.",
			Tags:        []string{"Machine Learning", "IoT", "Chatbot", "Android"},
			Achievements: []string{
				"Finalist Google Solution Challenge 2024",
				"Finalist International Imagine Cup 2023",
				"Top 2 Astranauts 2023",
			},
			Role:     "AI/ML Engineer",
			Category: "Mobile/ML",
			Featured: true,
			Links: map[string]string{
				"live":   "https://mainchick.unikomcodelabs.id/",
				"github": "https://github.com/daaffalbari/mainchick-mobile",
			},
		},
		{
			ID:          3,
			Title:       "Peaky Blinder",
			Description: "An AI-powered app for diabetic retinopathy prediction using smartphone fundus photos. Features Azure Vision AI for disease detection and an LLM chatbot for real-time patient support.",
			Tags:        []string{"Azure Vision", "LLM", "Healthcare", "Android"},
			Achievements: []string{
				"Runner up AI Innovation Compfest 2024",
				"Audience Award Compfest 2024",
				"Finalist Gemastik 2024",
			},
			Role:     "AI/ML Engineer",
			Category: "Healthcare",
			Featured: true,
			Links:    map[string]string{"github": "https://github.com/orgs/OpenEye-team/dashboard"},
		},
		{
			ID:          4,
			Title:       "OPet",
			Description: "A mobile app addressing animal abandonment through AI-powered pet adoption. Features personalized recommendations, CNN-based breed recognition, and real-time shelter location services.",
			Tags:        []string{"CNN", "Image Recognition", "Maps API", "Android"},
			Role:        "Machine Learning Engineer",
			Category:    "Mobile/ML",
			Links: map[string]string{
				"video":  "https://www.youtube.com/watch?v=cgZ7gm1bPlM",
				"github": "https://github.com/orgs/C23-PS008/dashboard",
			},
		},
		{
			ID:           5,
			Title:        "SociaLabs",
			Description:  "A social media analytics platform for Twitter data analysis. Integrates topic modeling, sentiment analysis, Social Network Analysis, and an AI chatbot for data-driven insights.",
			Tags:         []string{"NLP", "SNA", "Sentiment Analysis", "RAG"},
			Achievements: []string{"APICTA 2024 at Brunei"},
			Role:         "AI Engineer",
			Category:     "Data Science",
			Links:        map[string]string{"live": "http://socialabs.me/"},
		},
	},
	Achievements: []Achievement{
		{ID: 1, Title: "Global Top 100 Finalist", Organization: "Google Solution Challenge", Year: "2023 & 2024"},
		{ID: 2, Title: "Top 10 of 625 Teams", Organization: "Microsoft Imagine Cup", Year: "2022"},
		{ID: 3, Title: "1st Runner-Up + Audience Choice", Organization: "COMPFEST AI Innovation Challenge", Year: "2023"},
		{ID: 4, Title: "National Finalist", Organization: "Gemastik XVI Software Engineering", Year: "2023"},
		{ID: 5, Title: "Rector's Scholarship", Organization: "UNIKOM", Year: "3rd sem – graduation"},
		{ID: 6, Title: "TensorFlow Developer Certified", Organization: "Google", Year: "2023"},
	},
	Skills: []SkillCategory{
		{
			Name: "AI & LLM",
			Skills: []string{
				"LLM Agents", "A2A", "LangChain", "OpenAI SDK", "MCP",
				"RAG", "Knowledge Graph", "Fine-tuning", "OpenTelemetry", "Langfuse",
			},
		},
		{
			Name: "Backend & Cloud",
			Skills: []string{
				"Python", "FastAPI", "Flask", "Docker", "Kubernetes",
				"AWS", "GCP", "PostgreSQL", "Memgraph", "CI/CD",
			},
		},
		{
			Name: "ML & Data",
			Skills: []string{
				"TensorFlow", "PyTorch", "Computer Vision", "CNN",
				"Sentiment Analysis", "Social Network Analysis",
			},
		},
	},
	Education: Education{
		Institution: "Universitas Komputer Indonesia",
		Degree:      "Bachelor's Degree",
		Location:    "Bandung, Indonesia",
		Period:      "Aug 2020 – Oct 2024",
		GPA:         "3.63 / 4.00 (Cumlaude)",
		Coursework: []string{
			"Algorithms", "Data Structures", "Machine Learning",
			"Object-Oriented Programming", "Database",
		},
	},
}
