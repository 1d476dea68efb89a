package content

// generatedSchema is the JSON Schema the LLM's payload must satisfy before
// the pipeline trusts it.
const generatedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "GeneratedContent",
  "type": "object",
  "required": ["title", "body", "image_type", "aspect_ratio"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "body": {"type": "string", "minLength": 1},
    "hashtags": {"type": "array", "items": {"type": "string"}},
    "image_type": {"type": "string", "minLength": 1},
    "aspect_ratio": {"type": "string", "pattern": "^[0-9]+:[0-9]+$"},
    "overlay_text": {"type": "string"},
    "slides": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["focus", "description"],
        "properties": {
          "focus": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "video_script": {
      "type": "object",
      "properties": {
        "hook": {"type": "string"},
        "value": {"type": "string"},
        "story": {"type": "string"},
        "cta": {"type": "string"}
      }
    },
    "email_subject": {"type": "string"}
  }
}`
