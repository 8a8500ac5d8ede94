package report

type stackSupplement struct {
	frontend       []string
	backend        []string
	database       []string
	infrastructure []string
}

var stackSupplements = map[string]stackSupplement{
	"ecommerce": {
		frontend: []string{"Next.js", "PWA"},
		backend:  []string{"Stripe API", "PayPal SDK"},
		database: []string{"Elasticsearch"},
	},
	"healthcare": {
		backend:        []string{"FHIR API", "HL7"},
		database:       []string{"MongoDB"},
		infrastructure: []string{"AWS HIPAA", "VPN"},
	},
	"fintech": {
		backend:        []string{"Spring Security", "Kafka"},
		database:       []string{"Apache Cassandra"},
		infrastructure: []string{"API Gateway", "WAF"},
	},
	"manufacturing": {
		backend:        []string{"MQTT", "Apache Kafka"},
		database:       []string{"InfluxDB", "MongoDB"},
		infrastructure: []string{"Edge Computing", "IoT Gateway"},
	},
	"automotive": {
		backend:        []string{"AUTOSAR Adaptive", "ROS 2"},
		database:       []string{"TimescaleDB"},
		infrastructure: []string{"AWS IoT FleetWise", "OTA Update Server"},
	},
	"it": {
		backend:        []string{"Spring Boot", "Keycloak"},
		database:       []string{"Elasticsearch"},
		infrastructure: []string{"GitLab CI", "Terraform"},
	},
}

// RecommendStack returns the baseline stack extended with the supplements of profileID.
func RecommendStack(profileID string) Stack {
	s := Stack{
		Frontend:       []string{"React 18+", "TypeScript", "Tailwind CSS"},
		Backend:        []string{"Node.js", "Express.js", "PostgreSQL"},
		Database:       []string{"PostgreSQL", "Redis"},
		Infrastructure: []string{"Docker", "Kubernetes", "AWS/Azure"},
	}
	sup := stackSupplements[profileID]
	s.Frontend = append(s.Frontend, sup.frontend...)
	s.Backend = append(s.Backend, sup.backend...)
	s.Database = append(s.Database, sup.database...)
	s.Infrastructure = append(s.Infrastructure, sup.infrastructure...)
	return s
}

var industryMetrics = map[string][]Metric{
	"ecommerce": {
		{Name: "Conversion Rate", Current: "2.1%", Target: "4.5%", Improvement: "+114%"},
		{Name: "Mobile Conversion", Current: "1.2%", Target: "3.8%", Improvement: "+217%"},
	},
	"healthcare": {
		{Name: "Data Security Score", Current: "TBD", Target: "98%", Improvement: "+30%"},
		{Name: "Compliance Score", Current: "TBD", Target: "100%", Improvement: "+40%"},
	},
	"fintech": {
		{Name: "Transaction Processing", Current: "TBD", Target: "<100ms", Improvement: "+200%"},
		{Name: "Fraud Detection Rate", Current: "TBD", Target: "99.5%", Improvement: "+15%"},
	},
	"manufacturing": {
		{Name: "OEE", Current: "TBD", Target: ">85%", Improvement: "+20%"},
		{Name: "Unplanned Downtime", Current: "TBD", Target: "-50%", Improvement: "+50%"},
	},
	"automotive": {
		{Name: "OTA Success Rate", Current: "TBD", Target: "99.9%", Improvement: "+10%"},
		{Name: "Defect Density", Current: "TBD", Target: "<0.5/KLOC", Improvement: "+40%"},
	},
	"it": {
		{Name: "Deployment Frequency", Current: "TBD", Target: "daily", Improvement: "+300%"},
		{Name: "MTTR", Current: "TBD", Target: "<1h", Improvement: "+75%"},
	},
}

// DefineSuccessMetrics returns the universal metrics followed by those of profileID.
func DefineSuccessMetrics(profileID string) []Metric {
	out := []Metric{
		{Name: "Performance", Current: "TBD", Target: "<3s load time", Improvement: "+60%"},
		{Name: "User Satisfaction", Current: "TBD", Target: ">4.5/5", Improvement: "+25%"},
	}
	return append(out, industryMetrics[profileID]...)
}
