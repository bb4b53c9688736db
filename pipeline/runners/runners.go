/*
   Built-in pipeline.StageRunner implementations.
*/
package runners
