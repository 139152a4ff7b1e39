package curriculum

// catalogSchema is the JSON Schema every catalog document must satisfy
// before registration. Structural defects the schema can't express
// (dangling prerequisites, cycles) are caught by Graph.Register.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["trees"],
  "properties": {
    "trees": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "lessons"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "priority": {"type": "integer"},
          "lessons": {
            "type": "array",
            "minItems": 1,
            "items": {"$ref": "#/$defs/lesson"}
          }
        }
      }
    }
  },
  "$defs": {
    "lesson": {
      "type": "object",
      "required": ["id", "title", "order", "difficulty", "theory", "practice", "assessment", "reward_xp"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string", "minLength": 1},
        "order": {"type": "integer", "minimum": 0},
        "difficulty": {"type": "integer", "minimum": 1, "maximum": 5},
        "prerequisites": {"type": "array", "items": {"type": "string"}},
        "unlocks": {"type": "array", "items": {"$ref": "#/$defs/unlock"}},
        "theory": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["title", "body"],
            "properties": {
              "title": {"type": "string"},
              "body": {"type": "string"},
              "duration_secs": {"type": "integer", "minimum": 0},
              "asset_url": {"type": "string"}
            }
          }
        },
        "practice": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["text"],
            "properties": {
              "text": {"type": "string"},
              "rule": {"$ref": "#/$defs/rule"},
              "hints": {"type": "object", "additionalProperties": {"type": "string"}},
              "hint_after_secs": {"type": "integer", "minimum": 0}
            }
          }
        },
        "assessment": {
          "type": "object",
          "required": ["criteria", "passing_score"],
          "properties": {
            "criteria": {
              "type": "array",
              "minItems": 1,
              "items": {
                "type": "object",
                "required": ["id", "kind", "weight"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "description": {"type": "string"},
                  "kind": {"enum": ["automatic", "manual"]},
                  "weight": {"type": "number", "exclusiveMinimum": 0},
                  "instructions": {"type": "array", "items": {"type": "integer", "minimum": 0}}
                }
              }
            },
            "passing_score": {"type": "number", "minimum": 0, "maximum": 1},
            "bonuses": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["id", "xp_bonus"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "description": {"type": "string"},
                  "xp_bonus": {"type": "integer", "minimum": 0}
                }
              }
            }
          }
        },
        "reward_xp": {"type": "integer", "minimum": 0},
        "preview_asset_url": {"type": "string"}
      }
    },
    "unlock": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {"enum": ["lesson", "level", "xp", "achievement"]},
        "lesson": {"type": "string"},
        "level": {"type": "integer", "minimum": 1},
        "xp": {"type": "integer", "minimum": 0},
        "achievement": {"type": "string"}
      }
    },
    "rule": {
      "type": "object",
      "required": ["type", "threshold"],
      "properties": {
        "type": {
          "enum": [
            "line_count",
            "stroke_count",
            "shape_accuracy",
            "point_placement",
            "perspective_lines",
            "shading_gradation",
            "completion",
            "color_match",
            "closure"
          ]
        },
        "params": {"type": "object"},
        "threshold": {"type": "number", "minimum": 0, "maximum": 1}
      }
    }
  }
}`
