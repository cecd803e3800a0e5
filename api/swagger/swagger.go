package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Analytics API",
        "description": "REST API for academic exam result statistics",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "KPIs", "description": "Dashboard aggregates"},
        {"name": "Departments", "description": "Department statistics and rankings"},
        {"name": "Subjects", "description": "Subject statistics and difficulty"},
        {"name": "Students", "description": "Per-student lookups"},
        {"name": "Analytics", "description": "Filtering, comparison, trends and reports"},
        {"name": "Dataset", "description": "Dataset lifecycle"},
        {"name": "Export", "description": "CSV and PDF downloads"},
        {"name": "Auth", "description": "Authentication"}
    ],
    "paths": {
        "/kpis/overall": {
            "get": {
                "tags": ["KPIs"],
                "summary": "Overall pass/fail/distinction rates",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/kpis/yearly": {
            "get": {
                "tags": ["KPIs"],
                "summary": "Year-over-year exam statistics",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/kpis/department-stats": {
            "get": {
                "tags": ["KPIs"],
                "summary": "Ranked department statistics",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string", "enum": ["pass_rate", "exam_count", "students"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/kpis/filters": {
            "get": {
                "tags": ["KPIs"],
                "summary": "Distinct filter values for dropdowns",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "Paginated department statistics",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/departments/leaderboard": {
            "get": {
                "tags": ["Departments"],
                "summary": "Top and bottom departments by pass rate",
                "parameters": [
                    {"name": "top_n", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/departments/{name}": {
            "get": {
                "tags": ["Departments"],
                "summary": "Department detail with component averages",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/departments/{name}/subjects": {
            "get": {
                "tags": ["Departments"],
                "summary": "Subjects taught within a department",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Paginated subject statistics",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/subjects/search": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subject name search",
                "parameters": [
                    {"name": "query", "in": "query", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/subjects/difficulty-rank": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subjects ranked by mean score",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "category", "in": "query", "type": "string", "enum": ["hardest", "easiest"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/subjects/pass-rates": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subjects ranked by pass rate",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Students"],
                "summary": "Student search by ID or name",
                "parameters": [
                    {"name": "query", "in": "query", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search_type", "in": "query", "type": "string", "enum": ["id", "name", "all"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/batch": {
            "post": {
                "tags": ["Students"],
                "summary": "Summaries for several students at once",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Student profile summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/performance": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-student exam metrics",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/results": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-student exam rows",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/filter": {
            "post": {
                "tags": ["Analytics"],
                "summary": "Multi-criteria record filter with aggregates",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/analytics/comparison": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Side-by-side comparison of two departments or subjects",
                "parameters": [
                    {"name": "entity_type", "in": "query", "required": true, "type": "string", "enum": ["department", "subject"]},
                    {"name": "entity_name_1", "in": "query", "required": true, "type": "string"},
                    {"name": "entity_name_2", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/analytics/trends": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Year-over-year trend for one entity",
                "parameters": [
                    {"name": "entity_type", "in": "query", "required": true, "type": "string", "enum": ["department", "subject"]},
                    {"name": "entity_name", "in": "query", "required": true, "type": "string"},
                    {"name": "metric", "in": "query", "type": "string", "enum": ["pass_rate", "distinction_rate", "exam_count"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/analytics/trend-line": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Least-squares trend line for one entity",
                "parameters": [
                    {"name": "entity_type", "in": "query", "required": true, "type": "string", "enum": ["department", "subject"]},
                    {"name": "entity_name", "in": "query", "required": true, "type": "string"},
                    {"name": "metric", "in": "query", "type": "string", "enum": ["pass_rate", "distinction_rate", "exam_count"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/analytics/report": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Narrative statistics report",
                "parameters": [
                    {"name": "report_type", "in": "query", "type": "string", "enum": ["summary", "detailed", "executive"]},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/analytics/system": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Runtime metrics snapshot",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dataset/reload": {
            "post": {
                "tags": ["Dataset"],
                "summary": "Rebuild the dataset from source and drop cached statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/departments.csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Department statistics as a CSV download",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/report.pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Statistics report as a PDF download",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "report_type", "in": "query", "type": "string", "enum": ["summary", "detailed", "executive"]},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange admin credentials for a JWT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "FilterRequest": {
            "type": "object",
            "properties": {
                "year_from": {"type": "integer"},
                "year_to": {"type": "integer"},
                "department": {"type": "string"},
                "subject": {"type": "string"},
                "semester": {"type": "integer"},
                "pass_fail": {"type": "string"},
                "performance": {"type": "string", "enum": ["Pass", "Fail", "Distinction"]},
                "group_by": {"type": "string", "enum": ["none", "exam_year", "department", "subject"]},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "data": {"type": "object"},
                "error_code": {"type": "string"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
