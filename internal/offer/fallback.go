package offer

import "fmt"

// FallbackDocument is the deterministic offer used when the assembled
// document fails structural validation. Content is the house template
// parameterized with the computed project figures; it always passes
// Validate.
func FallbackDocument(params ProjectParameters, company CompanyProfile) OfferDocument {
	cost := params.TotalCost
	return OfferDocument{
		ProjectInfo: ProjectInfo{
			Name:      params.ProjectName,
			Client:    params.Client,
			Date:      params.Date,
			TotalCost: params.TotalCost,
			Timeline:  params.Timeline,
		},
		Sections: []Section{
			{
				ID: "1", Title: TitleSummary, Type: SectionText, PageBreak: true,
				Text: fmt.Sprintf("La presente propuesta responde a la necesidad de %s de contar con un servicio especializado para el desarrollo e implementación de un sistema tecnológico integral, que permita optimizar sus procesos de manera sistemática, integrada y basada en datos.\n\nEsta solución tiene por objetivo fortalecer los procesos institucionales, entregando herramientas tecnológicas que contribuyan a la mejora continua de la calidad operacional. La propuesta contempla el diseño e implementación de una plataforma web alojada en la nube, desarrollada bajo un enfoque modular que incluye funcionalidades clave como: gestión de usuarios y permisos, evaluación y seguimiento de procesos, visualización de indicadores clave a través de un panel de control, e integración bidireccional con sistemas existentes.", params.Client),
			},
			{
				ID: "2", Title: TitleScope, Type: SectionList,
				Items: []string{
					"Desarrollar una plataforma web alojada en la nube, moderna, segura e inclusiva, accesible desde distintos dispositivos y escalable",
					"Diseñar e implementar mecanismos de gestión y reporte de procesos, aplicables a distintos niveles organizacionales",
					"Incorporar un sistema flexible de creación, gestión y aplicación de configuraciones, ajustado a los criterios institucionales",
					"Proporcionar funcionalidades de acceso personalizado para distintos perfiles de usuarios",
					"Facilitar la gestión mediante una interfaz intuitiva que fomente la eficiencia operacional",
					"Generar reportes analíticos y visualizaciones de indicadores clave de desempeño",
					"Permitir la incorporación de ajustes funcionales y mejoras en el sistema sin interrupciones de servicio",
				},
			},
			{
				ID: "3", Title: TitleFeatures, Type: SectionText, PageBreak: true,
				Text: "El sistema considera los siguientes módulos principales:\n\n• Gestor de Usuarios: Módulo en el cual el usuario Administrador podrá crear, editar, organizar y actualizar perfiles de usuarios que operan en la institución. Estos perfiles estarán alineados al modelo organizacional del cliente y podrán configurarse según niveles jerárquicos, departamentos, sedes y campus.\n\n• Gestor de Configuraciones: Módulo en el cual el usuario Administrador podrá crear, agregar, modificar y/o eliminar las distintas configuraciones del sistema para cada funcionalidad, en cada uno de sus niveles operacionales.\n\n• Módulo de Gestión y Seguimiento: Módulo en el cual tanto los usuarios finales como los supervisores podrán realizar procesos de gestión y seguimiento.\n\n• Panel de Control y Reportería Avanzada: Módulo central de gestión estratégica donde el Administrador podrá monitorear el uso del sistema, analizar indicadores clave de desempeño y generar reportes personalizados.",
			},
			{
				ID: "4", Title: TitleUsers, Type: SectionTable,
				Table: Table{
					Headers: []string{"Perfil de Usuario", "Descripción", "Permisos Principales"},
					Rows: [][]string{
						{"Administrador", "Equipo de gestión institucional, dirección o soporte TI", "Crear/editar usuarios, gestionar configuraciones, configurar calendarios, supervisar uso del sistema"},
						{"Supervisor", "Personal con responsabilidad sobre coordinación de procesos", "Visualizar resultados por área, participar en evaluaciones, validar procesos, acceder a reportes"},
						{"Usuario Final", "Personal regular de la institución", "Acceder a funcionalidades definidas, realizar gestiones, visualizar historial, recibir retroalimentación"},
					},
				},
			},
			{
				ID: "5", Title: TitleInfrastructure, Type: SectionText, PageBreak: true,
				Text: "La solución propuesta contempla una infraestructura tecnológica moderna, escalable y segura:\n\n• Backend: Framework Django sobre Python, permitiendo una arquitectura robusta, modular y fácilmente integrable con sistemas existentes.\n\n• Frontend: Desarrollo basado en React con TypeScript, utilizado para la construcción de interfaces de usuario dinámicas, interactivas y reutilizables.\n\n• Base de Datos: Uso combinado de PostgreSQL (para datos estructurados relacionales) y MongoDB (para datos semiestructurados).\n\n• Infraestructura: Implementación sobre servidores Linux utilizando contenedores con Docker y orquestación a través de Kubernetes.\n\n• Integraciones: API RESTful para integración bidireccional con sistemas existentes, autenticación unificada con Microsoft EntraID o sistemas similares.",
			},
			{
				ID: "6", Title: TitleTeam, Type: SectionTable,
				Table: Table{
					Headers: []string{"Rol", "Responsabilidades Principales", "Experiencia Requerida"},
					Rows: [][]string{
						{"Project Manager", "Planificación, coordinación y control del proyecto. Interacción directa con el equipo del cliente", "Más de 10 años en gestión de proyectos tecnológicos"},
						{"Tech Lead / Arquitecto", "Define la arquitectura del sistema, estándares técnicos y lineamientos de integración", "Experiencia en arquitecturas de sistemas empresariales"},
						{"Front-End Developer", "Desarrolla la interfaz de usuario según principios de usabilidad y accesibilidad", "React, TypeScript, diseño responsive"},
						{"Back-End Developer", "Desarrolla la lógica de negocio, APIs RESTful y control de flujos de datos", "Django, Python, APIs RESTful"},
						{"UX/UI Designer", "Diseña la experiencia y la interfaz de usuario, intuitiva e inclusiva", "Diseño centrado en usuario, accesibilidad"},
						{"QA / Tester Funcional", "Diseña y ejecuta pruebas automatizadas y manuales", "Testing automatizado, casos de uso empresariales"},
						{"DevSecOps", "Gestiona entornos en la nube, automatiza despliegues, configura monitoreo", "Docker, Kubernetes, AWS/Azure"},
					},
				},
			},
			{
				ID: "7", Title: TitleMethodology, Type: SectionText, PageBreak: true,
				Text: "La implementación se realizará bajo la modalidad \"llave en mano\", utilizando un enfoque metodológico basado en Disciplined Agile del PMI:\n\nFase 1 - Inception (1 mes):\n• Refinamiento del alcance y visión del producto\n• Consolidación del equipo multidisciplinario\n• Consolidación de la arquitectura técnica\n• Confirmación del backlog inicial y priorización de requisitos\n\nFase 2 - Construction (3 meses):\n• Desarrollo incremental de los módulos\n• Iteraciones cortas (1-2 semanas) con demostraciones frecuentes\n• Implementación progresiva de las integraciones\n• Pruebas técnicas continuas\n\nFase 3 - Transition (1 mes):\n• Pruebas finales y transferencia tecnológica\n• Capacitación de personal técnico\n• Despliegue en producción\n• Activación de plan de soporte",
			},
			{
				ID: "8", Title: TitleWarranty, Type: SectionText,
				Text: fmt.Sprintf("%s ofrece una política de garantía y soporte post-implementación que asegura la continuidad operativa del sistema:\n\nGarantía Técnica (6 meses):\n• Corrección sin costo de errores funcionales, bugs o defectos atribuibles al código fuente\n• Corrección de errores de configuración en los entornos implementados\n• Revisión y ajuste de integraciones con sistemas institucionales\n• Actualización de la documentación técnica cuando se aplique alguna corrección\n\nSoporte Acompañado:\n• Resolución de consultas operativas y funcionales para usuarios autorizados\n• Acompañamiento en el monitoreo de integraciones y flujos críticos\n• Aplicación de ajustes menores de configuración\n• Participación en reuniones técnicas mensuales\n\nClasificación de Incidencias:\n• Nivel 1 (Crítico): 2 horas hábiles de respuesta\n• Nivel 2 (Medio): 8 horas hábiles de respuesta\n• Nivel 3 (Leve): 24 horas hábiles de respuesta", company.Name),
			},
			{
				ID: "9", Title: TitleTraining, Type: SectionList,
				Items: []string{
					"Capacitación funcional: 6 horas distribuidas en 2 a 3 sesiones según perfil",
					"Capacitación técnica (TI): 6 a 8 horas distribuidas en sesiones especializadas",
					"Acompañamiento supervisado: 4 semanas posteriores a la puesta en marcha",
					"Acceso permanente a materiales asincrónicos",
					"Manuales de usuario diferenciados por perfil",
					"Cápsulas de video por funcionalidad clave (2 a 5 minutos)",
					"Documentación técnica estructurada",
					"Entorno de prueba (sandbox) disponible por 30 días",
					"Preguntas frecuentes (FAQ) actualizadas",
				},
			},
			{
				ID: "10", Title: TitleExperience, Type: SectionText, PageBreak: true,
				Text: fmt.Sprintf("%s cuenta con más de 20 años de experiencia en desarrollo de productos digitales, con presencia en Latinoamérica y Europa. Experiencia relevante en el sector empresarial:\n\n• Pontificia Universidad Católica de Chile: Plataforma de Evaluación de Madurez en Gestión TI\n• Universidad Santo Tomás: Plataforma administrativa con hiperautomatización\n• Universidad Alberto Hurtado: Plataforma administrativa con hiperautomatización\n• Universidad de Las Américas: Plataforma para apoyo a personas con discapacidad cognitiva\n• Bomberos de Chile: Apoyo integral a la Academia Nacional de Bomberos\n\nEl equipo cuenta con especialistas en tecnologías empresariales, desarrolladores full-stack, arquitectos de software, y especialistas en experiencia de usuario. Se posee una sólida trayectoria en el diseño e implementación de soluciones para instituciones públicas y privadas en Chile y Latinoamérica.", company.Name),
			},
			{
				ID: "11", Title: TitleSuccessFactors, Type: SectionList,
				Items: []string{
					"Coordinación y ejecución de entrevistas y focus groups con participación activa del cliente",
					"Disponibilidad de APIs y sistemas existentes dentro de los plazos definidos",
					"Documentación clara de APIs, ambientes de prueba y autenticación segura",
					"Ambientes estables para QA y producción desde etapas tempranas",
					"Dedicación de colaboradores clave del cliente para validación y ejecución",
					"Gestión de licencias de software, hardware especializado o insumos específicos por parte del cliente",
					"Cumplimiento normativo y alineación con regulaciones vigentes en Chile",
				},
			},
			{
				ID: "12", Title: TitleSchedule, Type: SectionTable,
				Table: Table{
					Headers: []string{"Etapa", "Duración", "Actividades Principales", "Entregables"},
					Rows: [][]string{
						{"Inception", "1 mes", "Definición de requerimientos, análisis preliminar, identificación de actores", "Documento de especificación detallado y roadmap del proyecto"},
						{"Construction", "3 meses", "Desarrollo iterativo-incremental de módulos, integraciones críticas", "Versiones funcionales incrementales de la plataforma"},
						{"Transition", "1 mes", "Pruebas finales, transferencia tecnológica, capacitación, despliegue", "Solución operativa en ambiente del cliente"},
					},
				},
			},
			{
				ID: "13", Title: TitleInvestment, Type: SectionText,
				Text: fmt.Sprintf("Costo Total del Proyecto: $%s (pesos chilenos)\n\nDesglose de Costos:\n• Desarrollo de plataforma web: $%s\n• Integraciones con sistemas institucionales: $%s\n• Capacitación y transferencia tecnológica: $%s\n• Documentación y soporte inicial: $%s\n\nCondiciones de Pago:\n• 30%% al inicio del proyecto (firma de contrato)\n• 40%% al completar la Fase de Construction\n• 30%% al completar la Fase de Transition y aceptación del sistema\n\nGarantías Incluidas:\n• Garantía técnica por 6 meses\n• Soporte post-implementación por 6 meses\n• Actualizaciones de seguridad gratuitas\n• Capacitación completa del equipo técnico",
					formatCLP(cost),
					formatCLP(int(float64(cost)*0.71)),
					formatCLP(int(float64(cost)*0.18)),
					formatCLP(int(float64(cost)*0.07)),
					formatCLP(int(float64(cost)*0.04))),
			},
		},
		Styling: DefaultStyling,
	}
}
