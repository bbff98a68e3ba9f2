package render

// Shader de iluminação usado por nós com a flag LIGHTING.
// Luz direcional fixa + ambiente, com repetição de textura (texScale) para terrenos.

const lightingVertexShader = `
#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;
uniform vec2 texScale;

out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    fragTexCoord = vertexTexCoord * texScale;
    fragColor = vertexColor;
    fragNormal = normalize(mat3(matModel) * vertexNormal);
    fragWorldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const lightingFragmentShader = `
#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;
in vec3 fragWorldPos;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;

out vec4 finalColor;

void main() {
    vec4 texelColor = texture(texture0, fragTexCoord);
    if (texelColor.a < 0.1) discard;

    // Sol vindo de cima, levemente inclinado
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    vec3 normal = normalize(fragNormal);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 light = vec3(0.35) + vec3(0.65) * diff;

    vec4 color = texelColor * fragColor * colDiffuse;
    color.rgb *= light;

    // Neblina leve na distância
    float dist = length(viewPos - fragWorldPos);
    float fogFactor = clamp(exp(-pow(dist * 0.002, 2.0)), 0.0, 1.0);
    color.rgb = mix(vec3(0.12, 0.12, 0.16), color.rgb, fogFactor);

    finalColor = color;
}
`
