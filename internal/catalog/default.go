package catalog

// Default returns the built-in skill categories used when the config file
// does not provide its own catalog.
func Default() Categories {
	return Categories{
		"languages": {
			"Python", "Java", "Go", "C++", "C#", "JavaScript", "TypeScript",
			"Scala", "Rust", "R", "SQL", "Kotlin", "Ruby",
		},
		"data": {
			"Pandas", "NumPy", "Spark", "Airflow", "dbt", "Kafka", "Hadoop",
			"Snowflake", "BigQuery", "ETL", "Tableau", "Power BI", "Excel",
		},
		"machine_learning": {
			"Machine Learning", "Deep Learning", "PyTorch", "TensorFlow",
			"scikit-learn", "NLP", "Computer Vision", "Statistics",
		},
		"backend": {
			"Django", "Flask", "FastAPI", "Spring", "Node.js", "REST", "GraphQL",
			"gRPC", "PostgreSQL", "MySQL", "MongoDB", "Redis",
		},
		"frontend": {
			"React", "Vue", "Angular", "HTML", "CSS",
		},
		"infrastructure": {
			"Docker", "Kubernetes", "AWS", "GCP", "Azure", "Terraform", "Linux",
			"Git", "CI/CD",
		},
	}
}
